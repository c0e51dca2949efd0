// Package worker runs fire-and-forget background jobs, primarily the
// set-aside cache refreshes issued by the domain services.
package worker

import (
	"github.com/sirupsen/logrus"
)

type Worker struct {
	id         int
	jobQueue   chan Job
	workerPool chan chan Job
	quitChan   chan bool

	logger logrus.FieldLogger
}

func NewWorker(id int, workerPool chan chan Job, logger logrus.FieldLogger) Worker {
	return Worker{
		id:         id,
		jobQueue:   make(chan Job),
		workerPool: workerPool,
		quitChan:   make(chan bool),

		logger: logger.WithField("component", "worker"),
	}
}

func (w Worker) start() {
	go func() {
		for {
			w.workerPool <- w.jobQueue

			select {
			case job := <-w.jobQueue:
				w.logger.Debugf("starting job %s", job.Name())
				if err := job.Do(); err != nil {
					w.logger.Errorf("error while processing %s: %v", job.Name(), err)
				}
			case <-w.quitChan:
				w.logger.Infof("stopping worker %04d", w.id)
				return
			}
		}
	}()
}

func (w Worker) stop() {
	go func() {
		w.quitChan <- true
	}()
}

type Dispatcher struct {
	workerPool chan chan Job
	workers    []Worker
	maxWorkers int
	jobQueue   chan Job
	quitChan   chan bool

	logger logrus.FieldLogger
}

func NewDispatcher(jobQueue chan Job, maxWorkers int, logger logrus.FieldLogger) *Dispatcher {
	workerPool := make(chan chan Job, maxWorkers)

	return &Dispatcher{
		jobQueue:   jobQueue,
		maxWorkers: maxWorkers,
		workerPool: workerPool,
		quitChan:   make(chan bool),

		logger: logger.WithField("component", "dispatcher"),
	}
}

func (d *Dispatcher) Run() {
	for i := 0; i < d.maxWorkers; i++ {
		worker := NewWorker(i+1, d.workerPool, d.logger)
		worker.start()
		d.workers = append(d.workers, worker)
	}

	go d.dispatch()
}

func (d *Dispatcher) Stop() {
	for _, worker := range d.workers {
		worker.stop()
	}

	go func() {
		d.quitChan <- true
	}()
}

func (d *Dispatcher) dispatch() {
	for {
		select {
		case job := <-d.jobQueue:
			d.logger.Debugf("job enqueued: %s", job.Name())
			go func(job Job) {
				workerJobQueue := <-d.workerPool
				workerJobQueue <- job
			}(job)
		case <-d.quitChan:
			d.logger.Info("stopping dispatcher")
			return
		}
	}
}
