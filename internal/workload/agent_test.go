// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package workload

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/minirec/internal/logging"
)

// stubRecommender fails for users named "bad" and records request ids.
type stubRecommender struct {
	mu         sync.Mutex
	users      []string
	requestIDs map[string]bool
}

func (s *stubRecommender) Recommend(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, userID)
	if s.requestIDs == nil {
		s.requestIDs = make(map[string]bool)
	}
	s.requestIDs[logging.RequestIDFromContext(ctx)] = true
	if userID == "bad" {
		return nil, errors.New("unknown user")
	}
	return []string{"i1"}, nil
}

func TestQueryAgentRun(t *testing.T) {
	rec := &stubRecommender{}
	var buf bytes.Buffer
	a := NewQueryAgent(3, rec, []string{"u1", "bad", "u2"}, logging.NewTestLogger(&buf))

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if want := []string{"u1", "bad", "u2"}; !reflect.DeepEqual(rec.users, want) {
		t.Errorf("requested users = %v, want %v", rec.users, want)
	}
	if len(rec.requestIDs) != 3 || rec.requestIDs[""] {
		t.Errorf("expected 3 distinct request ids, got %v", rec.requestIDs)
	}

	served, failed := a.Counts()
	if served != 2 || failed != 1 {
		t.Errorf("Counts() = (%d, %d), want (2, 1)", served, failed)
	}

	out := buf.String()
	for _, want := range []string{"recommend failed", `"request_id"`, `"correlation_id"`, "query agent exit", `"agent":3`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
	if a.Name() != "query-agent-3" {
		t.Errorf("Name() = %q", a.Name())
	}
}

func TestQueryAgentCancelled(t *testing.T) {
	rec := &stubRecommender{}
	a := NewQueryAgent(0, rec, []string{"u1", "u2"}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(rec.users) != 0 {
		t.Errorf("requests issued after cancel: %v", rec.users)
	}
}

func TestLoadQueries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "querys")
	content := "u1\tu2\tu3\n\nu4\n\tu5\t\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadQueries(path)
	if err != nil {
		t.Fatalf("LoadQueries() error = %v", err)
	}
	want := [][]string{{"u1", "u2", "u3"}, {"u4"}, {"u5"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadQueries() = %v, want %v", got, want)
	}
}

func TestLoadQueriesMissing(t *testing.T) {
	_, err := LoadQueries(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrQueriesUnavailable) {
		t.Errorf("error = %v, want ErrQueriesUnavailable", err)
	}
}
