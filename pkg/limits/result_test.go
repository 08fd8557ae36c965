package limits

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestResult_Variants(t *testing.T) {
	loading := Loading()
	if loading.State() != StateLoading || loading.IsReady() {
		t.Error("Loading result should not be ready")
	}
	if loading.Status() != nil || loading.Err() != nil {
		t.Error("Loading result should carry neither status nor error")
	}

	status := &Status{Remaining: 50, Tier: TierOK}
	ready := Ready(status)
	if !ready.IsReady() || ready.State() != StateReady {
		t.Error("Ready result should be ready")
	}
	if ready.Status() != status {
		t.Error("Ready result should carry the status")
	}

	fetchErr := errors.New("spending fetch timed out")
	unavailable := Unavailable(fetchErr)
	if unavailable.IsReady() {
		t.Error("Unavailable result should not be ready")
	}
	if !errors.Is(unavailable.Err(), fetchErr) {
		t.Error("Unavailable result should carry the error")
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	ready := Ready(&Status{Remaining: 400, UsagePercentage: 20, Tier: TierOK})
	data, err := json.Marshal(ready)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"state":"ready"`) {
		t.Errorf("Expected ready state in %s", data)
	}
	if !strings.Contains(string(data), `"usage_percentage":20`) {
		t.Errorf("Expected usage percentage in %s", data)
	}

	unavailable := Unavailable(errors.New("provider down"))
	data, err = json.Marshal(unavailable)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"state":"unavailable"`) {
		t.Errorf("Expected unavailable state in %s", data)
	}
	if !strings.Contains(string(data), "provider down") {
		t.Errorf("Expected error message in %s", data)
	}
	if strings.Contains(string(data), `"status"`) {
		t.Errorf("Unavailable result should omit status, got %s", data)
	}
}
