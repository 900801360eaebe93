package pipeline

import (
	"testing"
	"time"
)

func TestTimings(t *testing.T) {
	var timings Timings
	if timings.Has(StageLoad) {
		t.Fatal("empty Timings reports StageLoad")
	}
	if got := timings.Duration(StageLoad); got != 0 {
		t.Fatalf("empty Duration = %v, want 0", got)
	}

	timings.Set(StageLoad, 20*time.Millisecond)
	timings.Add(StageTokenize, 30*time.Millisecond)
	timings.Add(StageTokenize, 40*time.Millisecond)

	if !timings.Has(StageLoad) || !timings.Has(StageTokenize) {
		t.Fatal("recorded stages not reported by Has")
	}
	if got := timings.Duration(StageTokenize); got != 70*time.Millisecond {
		t.Fatalf("Duration(tokenize) = %v, want 70ms", got)
	}
	if got := timings.Sum(StageLoad, StageTokenize); got != 90*time.Millisecond {
		t.Fatalf("Sum = %v, want 90ms", got)
	}
}

func TestTimingsNilReceiver(t *testing.T) {
	var timings *Timings
	timings.Set(StageLoad, time.Second)
	timings.Add(StageLoad, time.Second)
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 4)
	sink := ChannelSink{Ch: ch}

	Emit(sink, "a.pthr", StageTokenize, StatusDone, nil, time.Millisecond)
	EmitQueued(sink, []string{"b.pthr", "", "c.pthr"})

	close(ch)
	var got []Event
	for evt := range ch {
		got = append(got, evt)
	}
	if len(got) != 3 {
		t.Fatalf("received %d events, want 3", len(got))
	}
	if got[0].File != "a.pthr" || got[0].Status != StatusDone {
		t.Fatalf("first event = %+v", got[0])
	}
	if got[1].Status != StatusQueued || got[2].Status != StatusQueued {
		t.Fatalf("queued events = %+v, %+v", got[1], got[2])
	}
}

func TestNormalizeFiles(t *testing.T) {
	got := NormalizeFiles([]string{"b.pthr", "a.pthr", "b.pthr", ""}, "")
	want := []string{"a.pthr", "b.pthr"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeFiles = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NormalizeFiles = %v, want %v", got, want)
		}
	}
}
