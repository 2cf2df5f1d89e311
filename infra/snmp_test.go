package infra

import (
	"errors"
	"sync"
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu     sync.Mutex
	target string
	fail   bool
	alerts []string
}

func (r *recordingSender) SendTrap(deviceName, alertName, description, severity, lastedUpdateTime string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, deviceName+"|"+alertName+"|"+description+"|"+severity)
	if r.fail {
		return errors.New("unreachable")
	}
	return nil
}

func (r *recordingSender) Target() string {
	return r.target
}

func TestNotifySyncFailureReachesEveryTarget(t *testing.T) {
	ok := &recordingSender{target: "10.0.0.1"}
	broken := &recordingSender{target: "10.0.0.2", fail: true}
	s := newSnmpOrchestrator(TrapTypeSyncFailure, []TrapSender{ok, broken})

	s.NotifySyncFailure("http error! status: 500")

	expected := []string{"contact-sync|ContactSyncFailed|http error! status: 500|5"}
	assert.Equal(t, expected, ok.alerts)
	assert.Equal(t, expected, broken.alerts)
}

func TestBuildTrap(t *testing.T) {
	trap := BuildTrap("10.0.0.9", "contact-sync", "ContactSyncFailed", "boom", MajorSeverity, "2024-06-15 10:00:00")

	assert.Equal(t, "1.3.6.1.4.1.30378.1.1", trap.Enterprise)
	assert.Equal(t, "10.0.0.9", trap.AgentAddress)
	require.Len(t, trap.Variables, 6)
	assert.Equal(t, "1.3.6.1.4.1.30378.2.1", trap.Variables[0].Name)
	assert.Equal(t, "HPOVComponent", trap.Variables[0].Value)
	assert.Equal(t, "1.3.6.1.4.1.30378.2.6", trap.Variables[5].Name)
	assert.Equal(t, "2024-06-15 10:00:00", trap.Variables[5].Value)
	assert.Equal(t, gosnmp.OctetString, trap.Variables[3].Type)
}
