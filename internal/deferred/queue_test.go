package deferred

import "testing"

func TestQueue_FlushRunsInOrder(t *testing.T) {
	var q Queue
	var got []int
	q.Schedule(1, func() { got = append(got, 1) })
	q.Schedule(2, func() { got = append(got, 2) })

	if n := q.Pending(); n != 2 {
		t.Fatalf("pending: got %d, want %d", n, 2)
	}
	if n := q.Flush(); n != 2 {
		t.Fatalf("ran: got %d, want %d", n, 2)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("order: got %v, want [1 2]", got)
	}
	if n := q.Flush(); n != 0 {
		t.Fatalf("second flush ran: got %d, want %d", n, 0)
	}
}

func TestQueue_SameKeyReplacesPending(t *testing.T) {
	var q Queue
	var dropped []int
	q.OnDrop = func(key int) { dropped = append(dropped, key) }

	var got []string
	first := q.Schedule(3, func() { got = append(got, "first") })
	second := q.Schedule(3, func() { got = append(got, "second") })
	q.Flush()

	if len(got) != 1 || got[0] != "second" {
		t.Fatalf("ran: got %v, want [second]", got)
	}
	if !first.Canceled() || first.Done() {
		t.Fatalf("first task: canceled=%v done=%v, want canceled", first.Canceled(), first.Done())
	}
	if !second.Done() {
		t.Fatalf("second task did not run")
	}
	if len(dropped) != 1 || dropped[0] != 3 {
		t.Fatalf("dropped: got %v, want [3]", dropped)
	}
}

func TestQueue_CancelFrom(t *testing.T) {
	var q Queue
	var got []int
	for i := 0; i < 4; i++ {
		i := i
		q.Schedule(i, func() { got = append(got, i) })
	}
	q.CancelFrom(2)
	q.Cancel(0)
	q.Flush()

	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("ran: got %v, want [1]", got)
	}
}

func TestQueue_CloseDropsPendingAndRejectsNew(t *testing.T) {
	var q Queue
	ran := false
	pending := q.Schedule(0, func() { ran = true })
	q.Close()

	late := q.Schedule(1, func() { ran = true })
	if n := q.Flush(); n != 0 {
		t.Fatalf("ran after close: got %d, want %d", n, 0)
	}
	if ran {
		t.Fatalf("task ran after close")
	}
	if !pending.Canceled() || !late.Canceled() {
		t.Fatalf("tasks after close: pending=%v late=%v, want both canceled", pending.Canceled(), late.Canceled())
	}
	if !q.Closed() {
		t.Fatalf("queue should report closed")
	}
}

func TestQueue_TasksScheduledDuringFlushWait(t *testing.T) {
	var q Queue
	var got []int
	q.Schedule(0, func() {
		got = append(got, 0)
		q.Schedule(1, func() { got = append(got, 1) })
	})

	if n := q.Flush(); n != 1 {
		t.Fatalf("first flush ran: got %d, want %d", n, 1)
	}
	if n := q.Flush(); n != 1 {
		t.Fatalf("second flush ran: got %d, want %d", n, 1)
	}
	if len(got) != 2 || got[1] != 1 {
		t.Fatalf("ran: got %v, want [0 1]", got)
	}
}
