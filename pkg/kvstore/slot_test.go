package kvstore

import (
	"bytes"
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/angelmondragon/friendsofall-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Names []string `json:"names"`
}

func seedDoc() doc {
	return doc{Names: []string{"seed"}}
}

func TestSlotLoadSeedsAndPersists(t *testing.T) {
	medium := NewMemoryMedium()
	slot := NewSlot(KeyMenu, medium, seedDoc, nil, nil)

	require.NoError(t, slot.Load(context.Background()))
	assert.Equal(t, []string{"seed"}, slot.Get().Names)

	raw, found, err := medium.Read(context.Background(), KeyMenu)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"names":["seed"]}`, string(raw))
}

func TestSlotLoadUsesStoredValue(t *testing.T) {
	medium := NewMemoryMedium()
	require.NoError(t, medium.Write(context.Background(), KeyMenu, []byte(`{"names":["stored"]}`)))

	slot := NewSlot(KeyMenu, medium, seedDoc, nil, nil)
	require.NoError(t, slot.Load(context.Background()))
	assert.Equal(t, []string{"stored"}, slot.Get().Names)
}

func TestSlotLoadReseedsCorruptDocument(t *testing.T) {
	medium := NewMemoryMedium()
	require.NoError(t, medium.Write(context.Background(), KeyMenu, []byte(`{not json`)))

	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: buf})
	slot := NewSlot(KeyMenu, medium, seedDoc, logg, nil)

	require.NoError(t, slot.Load(context.Background()))
	assert.Equal(t, []string{"seed"}, slot.Get().Names)
	assert.Contains(t, buf.String(), "reseeding")
}

func TestSlotLoadReadFailureIsDependencyError(t *testing.T) {
	slot := NewSlot(KeyMenu, &failingMedium{readErr: errors.New("down")}, seedDoc, nil, nil)
	err := slot.Load(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestSlotSetNotifiesSubscribers(t *testing.T) {
	slot := NewSlot(KeyMenu, NewMemoryMedium(), seedDoc, nil, nil)
	require.NoError(t, slot.Load(context.Background()))

	var seen [][]string
	unsubscribe := slot.Subscribe(func(d doc) { seen = append(seen, d.Names) })

	slot.Set(context.Background(), doc{Names: []string{"a"}})
	unsubscribe()
	slot.Set(context.Background(), doc{Names: []string{"b"}})

	assert.Equal(t, [][]string{{"a"}}, seen)
	assert.Equal(t, []string{"b"}, slot.Get().Names)
}

func TestSlotUpdateErrorLeavesValue(t *testing.T) {
	slot := NewSlot(KeyMenu, NewMemoryMedium(), seedDoc, nil, nil)
	require.NoError(t, slot.Load(context.Background()))

	notified := false
	slot.Subscribe(func(doc) { notified = true })

	_, err := slot.Update(context.Background(), func(doc) (doc, error) {
		return doc{}, errors.New("rejected")
	})
	require.Error(t, err)
	assert.False(t, notified)
	assert.Equal(t, []string{"seed"}, slot.Get().Names)
}

func TestSlotWriteFailureIsBestEffort(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStoreMetrics(reg)
	medium := &failingMedium{writeErr: errors.New("disk full")}
	slot := NewSlot(KeyOrders, medium, seedDoc, nil, m)

	require.NoError(t, slot.Load(context.Background()))
	slot.Set(context.Background(), doc{Names: []string{"kept in memory"}})
	assert.Equal(t, []string{"kept in memory"}, slot.Get().Names)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var failures float64
	for _, mf := range mfs {
		if mf.GetName() == "store_write_failures_total" {
			failures = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), failures, "seed write and set write should both be counted")
}

func TestSlotGetBeforeLoadReturnsSeed(t *testing.T) {
	slot := NewSlot(KeyMenu, NewMemoryMedium(), seedDoc, nil, nil)
	assert.Equal(t, []string{"seed"}, slot.Get().Names)
}

type failingMedium struct {
	readErr  error
	writeErr error
}

func (f *failingMedium) Read(context.Context, string) ([]byte, bool, error) {
	if f.readErr != nil {
		return nil, false, f.readErr
	}
	return nil, false, nil
}

func (f *failingMedium) Write(context.Context, string, []byte) error {
	return f.writeErr
}
