package infra

import (
	"time"

	"github.com/HavvokLab/contact-sync/config"
	"github.com/HavvokLab/contact-sync/pkg/logger"
	"github.com/gosnmp/gosnmp"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
)

type TrapType string

func (t TrapType) String() string {
	return string(t)
}

const (
	TrapTypeSyncFailure TrapType = "contact_sync_failure"
)

const (
	CriticalSeverity = "6"
	MajorSeverity    = "5"
	ClearSeverity    = "0"
)

const (
	SyncDeviceName     = "contact-sync"
	SyncFailureAlert   = "ContactSyncFailed"
	trapTimeFormat     = "2006-01-02 15:04:05"
	snmpClientTimeout  = 30 * time.Second
	snmpClientRetries  = 3
	enterpriseOID      = "1.3.6.1.4.1.30378.1.1"
	varbindOIDPrefix   = "1.3.6.1.4.1.30378.2."
	varbindClassValue  = "HPOVComponent"
	genericTrapSpecial = 6
)

type TrapSender interface {
	SendTrap(deviceName, alertName, description, severity, lastedUpdateTime string) error
	Target() string
}

type SnmpOrchestrator struct {
	clients  []TrapSender
	trapType TrapType
	logger   zerolog.Logger
}

func NewSnmpOrchestrator(trapType TrapType, snmpList []config.SnmpConfig) (*SnmpOrchestrator, error) {
	clients := make([]TrapSender, 0, len(snmpList))
	for _, c := range snmpList {
		client, err := NewSnmpClient(c)
		if err != nil {
			return nil, err
		}

		clients = append(clients, client)
	}

	return newSnmpOrchestrator(trapType, clients), nil
}

func newSnmpOrchestrator(trapType TrapType, clients []TrapSender) *SnmpOrchestrator {
	return &SnmpOrchestrator{clients: clients, trapType: trapType, logger: logger.New("snmp.log")}
}

// SendTrap sends the trap to every target concurrently and waits for all of them.
func (s *SnmpOrchestrator) SendTrap(deviceName, alertName, description, severity, lastedUpdateTime string) {
	wg := conc.NewWaitGroup()
	for _, client := range s.clients {
		client := client
		wg.Go(func() {
			event := s.logger.Info()
			msg := "send trap success"
			if err := client.SendTrap(deviceName, alertName, description, severity, lastedUpdateTime); err != nil {
				event = s.logger.Error().Err(err)
				msg = "failed to send trap"
			}

			event.
				Str("target", client.Target()).
				Str("trap_type", s.trapType.String()).
				Str("device_name", deviceName).
				Str("alert_name", alertName).
				Str("description", description).
				Str("severity", severity).
				Str("lasted_update_time", lastedUpdateTime).
				Msg(msg)
		})
	}

	if r := wg.WaitAndRecover(); r != nil {
		s.logger.Error().Any("recover", r.Value).Msg("SnmpOrchestrator::SendTrap() - panic")
	}
}

// NotifySyncFailure raises a major alarm for a failed synchronization run.
func (s *SnmpOrchestrator) NotifySyncFailure(description string) {
	s.SendTrap(SyncDeviceName, SyncFailureAlert, description, MajorSeverity, time.Now().Format(trapTimeFormat))
}

type SnmpClient struct {
	agentHost string
	client    *gosnmp.GoSNMP
}

func NewSnmpClient(config config.SnmpConfig) (*SnmpClient, error) {
	client := &gosnmp.GoSNMP{
		Target:             config.TargetHost,
		Port:               uint16(config.TargetPort),
		Transport:          "udp",
		Community:          "public",
		Version:            gosnmp.Version1,
		Timeout:            snmpClientTimeout,
		Retries:            snmpClientRetries,
		ExponentialTimeout: true,
		MaxOids:            gosnmp.MaxOids,
	}

	if err := client.Connect(); err != nil {
		return nil, err
	}

	return &SnmpClient{agentHost: config.AgentHost, client: client}, nil
}

func (c *SnmpClient) Target() string {
	return c.client.Target
}

func (c *SnmpClient) SendTrap(deviceName, alertName, description, severity, lastedUpdateTime string) error {
	_, err := c.client.SendTrap(BuildTrap(c.agentHost, deviceName, alertName, description, severity, lastedUpdateTime))
	return err
}

// BuildTrap lays out the varbinds in the order the NMS expects: class,
// device, alert, description, severity, last update time.
func BuildTrap(agentHost, deviceName, alertName, description, severity, lastedUpdateTime string) gosnmp.SnmpTrap {
	values := []string{varbindClassValue, deviceName, alertName, description, severity, lastedUpdateTime}
	variables := make([]gosnmp.SnmpPDU, 0, len(values))
	for i, v := range values {
		variables = append(variables, gosnmp.SnmpPDU{
			Name:  varbindOIDPrefix + string(rune('1'+i)),
			Type:  gosnmp.OctetString,
			Value: v,
		})
	}

	return gosnmp.SnmpTrap{
		Enterprise:   enterpriseOID,
		AgentAddress: agentHost,
		GenericTrap:  genericTrapSpecial,
		SpecificTrap: 1,
		Variables:    variables,
	}
}
