package ecs

import (
	"context"
	"reflect"
	"time"
)

// System is a unit of per-frame behavior. Systems are plain structs; Query
// and Singleton fields are bound automatically when the system is registered,
// and any other fields persist between frames as system state.
type System interface {
	Execute(frame *Frame)
}

// binder is implemented by Query and Singleton fields wired at registration.
type binder interface {
	bind(world *World)
}

// syncer is implemented by Query fields synchronized before each frame.
type syncer interface {
	Sync()
}

// SchedulerStats summarizes system execution so far.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds execution timings for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemTimings struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler executes registered systems in order, once per tick. Before the
// systems of a tick run, every bound query is synchronized; afterwards the
// tick's command buffer is flushed.
type Scheduler struct {
	world   *World
	systems []System
	queries []syncer
	timings []*systemTimings
}

// NewScheduler creates a scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:   world,
		systems: make([]System, 0),
	}
}

// Register adds a system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.wire(system)
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.timings = append(s.timings, &systemTimings{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) wire(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		handle := field.Addr().Interface()
		if b, ok := handle.(binder); ok {
			b.bind(s.world)
			if q, ok := handle.(syncer); ok {
				s.queries = append(s.queries, q)
			}
		}
	}
}

// Once synchronizes all bound queries, executes every system with the given
// delta time, and flushes the frame's command buffer.
func (s *Scheduler) Once(dt float64) {
	for _, q := range s.queries {
		q.Sync()
	}

	frame := newFrame(dt, s.world)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		t := s.timings[i]
		t.executionCount++
		t.lastDuration = duration
		t.totalDuration += duration
		if duration < t.minDuration {
			t.minDuration = duration
		}
		if duration > t.maxDuration {
			t.maxDuration = duration
		}
	}

	frame.Commands.Flush(s.world)
}

// Run ticks all systems at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Stats returns execution statistics for all registered systems.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.timings)),
	}

	var totalExecs int64
	for i, t := range s.timings {
		avg := time.Duration(0)
		if t.executionCount > 0 {
			avg = t.totalDuration / time.Duration(t.executionCount)
		}
		stats.Systems[i] = SystemStats{
			Name:           t.name,
			ExecutionCount: t.executionCount,
			MinDuration:    t.minDuration,
			MaxDuration:    t.maxDuration,
			AvgDuration:    avg,
			LastDuration:   t.lastDuration,
			TotalDuration:  t.totalDuration,
		}
		totalExecs += t.executionCount
	}
	stats.TotalExecutions = totalExecs
	return stats
}
