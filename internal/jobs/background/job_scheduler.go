package background

import (
	"context"
	"log"
	"time"

	"dinemart/internal/jobs"
	"dinemart/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic lifecycle sweeps
type JobScheduler struct {
	scheduler      gocron.Scheduler
	orderSvc       services.OrderServiceInterface
	reservationSvc services.ReservationServiceInterface
	alertSvc       *jobs.InventoryAlertService
	jobJobs        map[string]gocron.Job
}

func NewJobScheduler(orderSvc services.OrderServiceInterface, reservationSvc services.ReservationServiceInterface,
	alertSvc *jobs.InventoryAlertService) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:      scheduler,
		orderSvc:       orderSvc,
		reservationSvc: reservationSvc,
		alertSvc:       alertSvc,
		jobJobs:        make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all lifecycle sweeps
func (js *JobScheduler) registerJobs() {
	js.register("order-auto-complete", 15*time.Minute, js.completeDeliveredOrders)
	js.register("reservation-reminders", 30*time.Minute, js.sendReservationReminders)
	js.register("reservation-expiry", 24*time.Hour, js.cancelExpiredReservations)
	js.register("inventory-alerts", 24*time.Hour, js.checkLowStock)

	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

func (js *JobScheduler) register(name string, interval time.Duration, taskFn func() error) {
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create %s job: %v", name, err)
		return
	}
	js.jobJobs[name] = job
}

// completeDeliveredOrders marks orders delivered an hour or more ago
// as completed
func (js *JobScheduler) completeDeliveredOrders() error {
	count, err := js.orderSvc.CompleteDeliveredOrders(context.Background())
	if err != nil {
		log.Printf("Order auto-complete sweep failed: %v", err)
		return err
	}
	if count > 0 {
		log.Printf("Auto-completed %d delivered orders", count)
	}
	return nil
}

// sendReservationReminders notifies guests of upcoming reservations
func (js *JobScheduler) sendReservationReminders() error {
	sent, err := js.reservationSvc.SendReminders(context.Background())
	if err != nil {
		log.Printf("Reservation reminder sweep failed: %v", err)
		return err
	}
	if sent > 0 {
		log.Printf("Sent %d reservation reminders", sent)
	}
	return nil
}

// cancelExpiredReservations cancels bookings stuck in PENDING for a day
func (js *JobScheduler) cancelExpiredReservations() error {
	cancelled, err := js.reservationSvc.CancelExpired(context.Background())
	if err != nil {
		log.Printf("Reservation expiry sweep failed: %v", err)
		return err
	}
	if cancelled > 0 {
		log.Printf("Auto-cancelled %d expired reservations", cancelled)
	}
	return nil
}

// checkLowStock alerts restaurant owners about low kitchen stock
func (js *JobScheduler) checkLowStock() error {
	low, err := js.alertSvc.CheckLowStock(context.Background())
	if err != nil {
		log.Printf("Low stock sweep failed: %v", err)
		return err
	}
	if low > 0 {
		log.Printf("Found %d low stock items", low)
	}
	return nil
}

// GetJobStatus returns information about scheduled jobs. The job map
// is fixed after construction, so reads need no locking.
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	jobs := make([]string, 0, len(js.jobJobs))
	for name := range js.jobJobs {
		jobs = append(jobs, name)
	}

	return map[string]interface{}{
		"total_jobs": len(js.jobJobs),
		"jobs":       jobs,
	}
}
