package dsp

import "testing"

func TestUpsample_RepeatsEachSample(t *testing.T) {
	src := NewSliceSource([]RS{1, 2, 3})
	up := NewUpsample[RS](src, 3)

	want := []RS{1, 1, 1, 2, 2, 2, 3, 3, 3}
	for i, w := range want {
		got, ok := up.Next()
		if !ok {
			t.Fatalf("sample %d: unexpected exhaustion", i)
		}
		if got != w {
			t.Fatalf("sample %d: got %v want %v", i, got, w)
		}
	}
	if _, ok := up.Next(); ok {
		t.Fatal("expected exhaustion after upstream drained")
	}
}

func TestDownsample_KeepsFirstOfEachGroup(t *testing.T) {
	src := NewSliceSource([]RS{1, 2, 3, 4, 5, 6})
	down := NewDownsample[RS](src, 3)

	want := []RS{1, 4}
	for i, w := range want {
		got, ok := down.Next()
		if !ok {
			t.Fatalf("sample %d: unexpected exhaustion", i)
		}
		if got != w {
			t.Fatalf("sample %d: got %v want %v", i, got, w)
		}
	}
	if _, ok := down.Next(); ok {
		t.Fatal("expected exhaustion after upstream drained")
	}
}

func TestDownsample_PartialTrailingGroupStillEmits(t *testing.T) {
	// Four samples downsampled by 3: one full group (1 emitted) plus a
	// short trailing group whose lone sample is still emitted.
	src := NewSliceSource([]RS{1, 2, 3, 4})
	down := NewDownsample[RS](src, 3)

	first, ok := down.Next()
	if !ok || first != 1 {
		t.Fatalf("got %v, %v; want 1, true", first, ok)
	}
	second, ok := down.Next()
	if !ok || second != 4 {
		t.Fatalf("got %v, %v; want 4, true", second, ok)
	}
	if _, ok := down.Next(); ok {
		t.Fatal("expected exhaustion")
	}
}
