package background

import (
	"context"
	"sync"
	"time"

	"audimart/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/gommon/log"
)

// JobScheduler manages periodic maintenance work: availability snapshot
// refresh, overdue invoice marking and low-stock alerts.
type JobScheduler struct {
	scheduler       gocron.Scheduler
	availabilitySvc services.AvailabilityService
	invoiceSvc      services.InvoiceService
	jobs            map[string]gocron.Job
	mu              sync.RWMutex
}

func NewJobScheduler(availabilitySvc services.AvailabilityService, invoiceSvc services.InvoiceService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		availabilitySvc: availabilitySvc,
		invoiceSvc:      invoiceSvc,
		jobs:            make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Info("starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Availability refresh keeps the cached snapshot warm so the
	// distribution dialog rarely pays the full reconciliation cost.
	availabilityJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshAvailability, context.Background()),
		gocron.WithName("availability-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Errorf("failed to create availability refresh job: %v", err)
	} else {
		js.jobs["availability-refresh"] = availabilityJob
	}

	overdueJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.markOverdueInvoices, context.Background()),
		gocron.WithName("invoice-overdue-check"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Errorf("failed to create overdue invoice job: %v", err)
	} else {
		js.jobs["invoice-overdue-check"] = overdueJob
	}

	log.Infof("registered %d background jobs", len(js.jobs))
}

func (js *JobScheduler) refreshAvailability(ctx context.Context) error {
	result, err := js.availabilitySvc.Recompute(ctx)
	if err != nil {
		log.Errorf("availability refresh failed: %v", err)
		return err
	}
	log.Infof("availability snapshot refreshed: %d items, %d warnings", len(result.Items), len(result.Warnings))
	return nil
}

func (js *JobScheduler) markOverdueInvoices(ctx context.Context) error {
	marked, err := js.invoiceSvc.MarkOverdueInvoices(ctx)
	if err != nil {
		log.Errorf("overdue invoice check failed: %v", err)
		return err
	}
	if marked > 0 {
		log.Infof("marked %d invoices overdue", marked)
	}
	return nil
}

// AddJob registers a custom periodic job.
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	js.jobs[name] = job
	return nil
}

// RemoveJob unregisters a job by name.
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobs, name)
		return err
	}
	return nil
}

// GetJobStatus reports the registered jobs.
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	jobs := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		jobs = append(jobs, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.jobs),
		"jobs":       jobs,
	}
}
