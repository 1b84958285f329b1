package future

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marksmeltzer/async/sched"
)

func TestPromise_States(t *testing.T) {
	p := NewPromise[int]()
	f := p.Future()

	assert.True(t, p.Free())
	assert.False(t, f.IsDone())
	assert.False(t, f.Succeeded())
	assert.False(t, f.Faulted())
	assert.False(t, f.Canceled())
	assert.NoError(t, f.Err())

	p.Set(7, nil)

	assert.False(t, p.Free())
	assert.True(t, f.IsDone())
	assert.True(t, f.Succeeded())
	assert.False(t, f.Faulted())
	assert.False(t, f.Canceled())
	assert.NoError(t, f.Err())

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestPromise_Faulted(t *testing.T) {
	boom := errors.New("boom")
	f := Done2(0, boom)

	assert.True(t, f.IsDone())
	assert.False(t, f.Succeeded())
	assert.True(t, f.Faulted())
	assert.False(t, f.Canceled())
	assert.ErrorIs(t, f.Err(), boom)

	_, err := f.Get()
	assert.Same(t, boom, err)
}

func TestPromise_Cancel(t *testing.T) {
	p := NewPromise[string]()
	require.True(t, p.Cancel())
	require.False(t, p.Cancel())

	f := p.Future()
	assert.True(t, f.IsDone())
	assert.True(t, f.Canceled())
	assert.False(t, f.Faulted())
	assert.False(t, f.Succeeded())

	_, err := f.Get()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCanceled(t *testing.T) {
	f := Canceled[int]()
	assert.True(t, f.Canceled())
}

// Subscribe must never run the callback inside the subscriber's frame, even
// when the future is already done. The callback blocks until Subscribe has
// returned; a synchronous invocation would deadlock the test.
func TestSubscribe_NeverInline(t *testing.T) {
	f := Done(1)

	registered := make(chan struct{})
	done := make(chan struct{})
	f.Subscribe(func(val int, err error) {
		<-registered
		close(done)
	})
	close(registered)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback was not delivered")
	}
}

func TestSubscribe_BeforeCompletion(t *testing.T) {
	p := NewPromise[int]()
	f := p.Future()

	got := make(chan int, 1)
	f.Subscribe(func(val int, err error) {
		got <- val
	})
	p.Set(42, nil)

	assert.Equal(t, 42, <-got)
}

func TestSubscribe_RunsOnce(t *testing.T) {
	p := NewPromise[int]()
	f := p.Future()

	calls := make(chan struct{}, 4)
	f.Subscribe(func(val int, err error) {
		calls <- struct{}{}
	})
	p.Set(1, nil)

	<-calls
	select {
	case <-calls:
		t.Fatal("callback ran more than once")
	case <-time.After(50 * time.Millisecond):
	}
}

// countSubmissions replaces the default executor with one that counts
// submissions for the duration of the test.
func countSubmissions(t *testing.T) *atomic.Int32 {
	t.Helper()

	var submits atomic.Int32
	sched.Set(sched.ExecutorFunc(func(f func()) {
		submits.Add(1)
		go f()
	}))
	t.Cleanup(func() {
		sched.Set(sched.GoExecutor{})
	})
	return &submits
}

func TestSubscribeScheduled_AlreadyDone_SingleSubmission(t *testing.T) {
	submits := countSubmissions(t)

	got := make(chan int, 1)
	Done(3).SubscribeScheduled(func(val int, err error) {
		got <- val
	})

	assert.Equal(t, 3, <-got)
	assert.Equal(t, int32(1), submits.Load())
}

func TestSubscribeScheduled_Pending_SingleSubmission(t *testing.T) {
	submits := countSubmissions(t)

	p := NewPromise[int]()
	got := make(chan int, 1)
	p.Future().SubscribeScheduled(func(val int, err error) {
		got <- val
	})
	p.Set(9, nil)

	assert.Equal(t, 9, <-got)
	assert.Equal(t, int32(1), submits.Load())
}

func TestSubmit_RecoversPanic(t *testing.T) {
	f := Submit(panicExecutor{}, func() (int, error) {
		panic("worker exploded")
	})

	_, err := f.Get()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "worker exploded")
}

// panicExecutor runs submissions synchronously so the test does not race
// goleak's goroutine accounting.
type panicExecutor struct{}

func (panicExecutor) Submit(f func()) { f() }

func TestAllOf_Empty(t *testing.T) {
	f := AllOf[int]()
	v, err := f.Get()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestAllOf_FirstError(t *testing.T) {
	boom := errors.New("boom")
	f1 := Done(1)
	f2 := Done2(0, boom)

	_, err := AllOf(f1, f2).Get()
	assert.ErrorIs(t, err, boom)
}

func TestThen_ErrorPassthrough(t *testing.T) {
	boom := errors.New("boom")
	f := Then(Done2(0, boom), func(val int, err error) (string, error) {
		return "", err
	})

	_, err := f.Get()
	assert.Same(t, boom, err)
}
