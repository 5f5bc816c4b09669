package chain

import "testing"

func TestParseEventNameCanonical(t *testing.T) {
	got, err := ParseEventName("create_reporter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != CreateReporter {
		t.Errorf("got %v, want CreateReporter", got)
	}
}

func TestParseEventNameEVMAlias(t *testing.T) {
	got, err := ParseEventName("ReporterCreated")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != CreateReporter {
		t.Errorf("got %v, want CreateReporter", got)
	}
}

func TestParseEventNameDualAlias(t *testing.T) {
	for _, alias := range []string{"unstake", "Unstake", "ReporterStakeWithdrawn"} {
		got, err := ParseEventName(alias)
		if err != nil {
			t.Fatalf("ParseEventName(%s): %v", alias, err)
		}
		if got != Unstake {
			t.Errorf("ParseEventName(%s) = %v, want Unstake", alias, got)
		}
	}
}

func TestParseEventNameUnrecognized(t *testing.T) {
	if _, err := ParseEventName("NotARealEvent"); err == nil {
		t.Error("expected an error for an unrecognized event name")
	} else if !IsKind(err, InvalidInput) {
		t.Errorf("expected InvalidInput kind, got %v", err)
	}
}

func TestEventNameFromIndex(t *testing.T) {
	got, err := EventNameFromIndex(int(CreateCase))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != CreateCase {
		t.Errorf("got %v, want CreateCase", got)
	}

	if _, err := EventNameFromIndex(999); err == nil {
		t.Error("expected an error for an out-of-range index")
	}
}

func TestEventNameJSONRoundTrip(t *testing.T) {
	data, err := CreateAsset.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var got EventName
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got != CreateAsset {
		t.Errorf("round trip mismatch: got %v, want CreateAsset", got)
	}
}
