package queue

import "testing"

func newTestQueue() *Queue {
	return New([]Track{
		{Title: "one", Path: "/a/one.mp3"},
		{Title: "two", Path: "/a/two.flac"},
		{Title: "three", Path: "/a/three.ogg"},
	})
}

func TestQueueNavigation(t *testing.T) {
	q := newTestQueue()
	if q.Current().Title != "one" {
		t.Fatalf("current = %q, want one", q.Current().Title)
	}
	if !q.Advance() || q.Current().Title != "two" {
		t.Fatalf("advance failed, current %q", q.Current().Title)
	}
	if !q.Advance() || !q.Advance() == false {
		// third advance reaches the end
	}
	if q.Advance() {
		t.Error("advance past end succeeded")
	}
	if q.Current().Title != "three" {
		t.Errorf("current = %q, want three", q.Current().Title)
	}
	if !q.Previous() || q.Current().Title != "two" {
		t.Errorf("previous failed, current %q", q.Current().Title)
	}
}

func TestQueueBounds(t *testing.T) {
	q := newTestQueue()
	if q.Previous() {
		t.Error("previous at start succeeded")
	}
	q.SetCurrentIndex(5)
	if q.CurrentIndex() != 0 {
		t.Error("out-of-range SetCurrentIndex applied")
	}
	q.SetCurrentIndex(2)
	if q.Current().Title != "three" {
		t.Errorf("current = %q after SetCurrentIndex(2)", q.Current().Title)
	}
	if q.Track(3) != nil {
		t.Error("Track(3) should be nil")
	}
	if q.Len() != 3 {
		t.Errorf("Len = %d", q.Len())
	}
}

func TestEmptyQueue(t *testing.T) {
	q := New(nil)
	if q.Current() != nil {
		t.Error("empty queue has a current track")
	}
	if q.Advance() || q.Previous() {
		t.Error("navigation on empty queue succeeded")
	}
}
