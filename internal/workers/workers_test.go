// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
)

// recordingWorker records Start/Stop calls into a shared log.
type recordingWorker struct {
	id  int
	log *[]string
}

func (w *recordingWorker) Start(context.Context) {
	*w.log = append(*w.log, "start", string(rune('0'+w.id)))
}

func (w *recordingWorker) Stop() {
	*w.log = append(*w.log, "stop", string(rune('0'+w.id)))
}

func TestWorkers_StartStopOrder(t *testing.T) {
	var log []string
	ws := NewWorkers(
		&recordingWorker{id: 1, log: &log},
		&recordingWorker{id: 2, log: &log},
	)

	ws.Start(context.Background())
	ws.Stop()

	expected := []string{"start", "1", "start", "2", "stop", "2", "stop", "1"}
	if len(log) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, log)
	}
	for i := range expected {
		if log[i] != expected[i] {
			t.Errorf("expected log[%d]=%s, got %s", i, expected[i], log[i])
		}
	}
}

func TestWorkers_Empty(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Start(context.Background())
	ws.Stop()
}
