package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceCore_Lifecycle(t *testing.T) {
	core := new(SourceCore[int])

	assert.False(t, core.Done())
	assert.False(t, core.Succeeded())

	core.SetResult(3)

	assert.True(t, core.Done())
	assert.True(t, core.Succeeded())

	v, err := core.Result()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestSourceCore_SetError(t *testing.T) {
	boom := errors.New("boom")
	core := new(SourceCore[int])
	core.SetError(boom)

	assert.True(t, core.Done())
	assert.False(t, core.Succeeded())

	tk := core.Task()
	assert.True(t, tk.Faulted())
	assert.False(t, tk.Canceled())

	_, err := core.Result()
	assert.Same(t, boom, err)
}

func TestSourceCore_DoubleCompletePanics(t *testing.T) {
	core := new(SourceCore[int])
	core.SetResult(1)

	assert.PanicsWithValue(t, "task: source already completed", func() {
		core.SetResult(2)
	})
	assert.PanicsWithValue(t, "task: source already completed", func() {
		core.SetError(errors.New("late"))
	})
}

func TestSourceCore_NilErrorPanics(t *testing.T) {
	core := new(SourceCore[int])
	assert.PanicsWithValue(t, "task: nil error", func() {
		core.SetError(nil)
	})
}

func TestSourceCore_EarlyResultPanics(t *testing.T) {
	core := new(SourceCore[int])
	assert.PanicsWithValue(t, "task: result is not ready", func() {
		core.Result()
	})
}

func TestSourceCore_DoubleRegistrationPanics(t *testing.T) {
	core := new(SourceCore[int])
	core.OnComplete(func() {}, 0)

	assert.PanicsWithValue(t, "task: continuation already registered", func() {
		core.OnComplete(func() {}, 0)
	})

	// Unblock the registered continuation so nothing dangles.
	core.SetResult(1)
}

func TestSourceCore_DeliversOnCompletion(t *testing.T) {
	core := new(SourceCore[int])

	done := make(chan struct{})
	core.OnComplete(func() {
		close(done)
	}, UseScheduler)
	core.SetResult(1)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("continuation was not delivered")
	}
}

func TestSourceCore_InlineDeliveryOnCompleter(t *testing.T) {
	core := new(SourceCore[int])

	delivered := false
	core.OnComplete(func() {
		delivered = true
	}, 0)
	// Without UseScheduler the continuation runs inside the completing
	// call.
	core.SetResult(1)
	assert.True(t, delivered)
}

func TestSourceCore_RegistrationAfterCompletion(t *testing.T) {
	core := new(SourceCore[int])
	core.SetResult(1)

	done := make(chan struct{})
	core.OnComplete(func() {
		close(done)
	}, 0)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("continuation was not delivered")
	}
}

func TestSourceCore_GuardPanicsFlag(t *testing.T) {
	core := new(SourceCore[int])

	done := make(chan struct{})
	core.OnComplete(func() {
		close(done)
		panic("continuation exploded")
	}, UseScheduler|GuardPanics)
	core.SetResult(1)
	<-done
}
