package discovery

import (
	"fmt"
	"net"
	"strconv"

	consulapi "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Registration describes how the HTTP service is advertised to Consul.
type Registration struct {
	Name          string
	Host          string
	Port          int
	HealthPath    string
	CheckInterval string
	CheckTimeout  string
}

// Agent is the subset of the Consul agent API used for registration.
type Agent interface {
	ServiceRegister(service *consulapi.AgentServiceRegistration) error
	ServiceDeregister(serviceID string) error
}

// ConsulRegistrar registers and deregisters a single service instance.
type ConsulRegistrar struct {
	agent     Agent
	logger    *zerolog.Logger
	serviceID string
}

// NewConsulRegistrar creates a registrar talking to the agent at addr.
func NewConsulRegistrar(logger *zerolog.Logger, addr string) (*ConsulRegistrar, error) {
	cfg := consulapi.DefaultConfig()
	cfg.Address = addr

	client, err := consulapi.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return NewConsulRegistrarWithAgent(logger, client.Agent()), nil
}

// NewConsulRegistrarWithAgent creates a registrar on an existing agent.
func NewConsulRegistrarWithAgent(logger *zerolog.Logger, agent Agent) *ConsulRegistrar {
	return &ConsulRegistrar{agent: agent, logger: logger}
}

// Register advertises the service with an HTTP check against its health route.
func (r *ConsulRegistrar) Register(reg Registration) error {
	interval := reg.CheckInterval
	if interval == "" {
		interval = "10s"
	}
	timeout := reg.CheckTimeout
	if timeout == "" {
		timeout = "2s"
	}

	serviceID := fmt.Sprintf("%s-%s-%d", reg.Name, reg.Host, reg.Port)
	checkURL := fmt.Sprintf("http://%s%s", net.JoinHostPort(reg.Host, strconv.Itoa(reg.Port)), reg.HealthPath)

	err := r.agent.ServiceRegister(&consulapi.AgentServiceRegistration{
		ID:      serviceID,
		Name:    reg.Name,
		Address: reg.Host,
		Port:    reg.Port,
		Check: &consulapi.AgentServiceCheck{
			HTTP:                           checkURL,
			Method:                         "GET",
			Interval:                       interval,
			Timeout:                        timeout,
			DeregisterCriticalServiceAfter: "1m",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to register service %q: %w", reg.Name, err)
	}

	r.serviceID = serviceID
	r.logger.Info().Str("service_id", serviceID).Str("check", checkURL).Msg("registered with consul")

	return nil
}

// Deregister removes the instance registered by Register, if any.
func (r *ConsulRegistrar) Deregister() {
	if r.serviceID == "" {
		return
	}

	if err := r.agent.ServiceDeregister(r.serviceID); err != nil {
		r.logger.Error().Err(err).Str("service_id", r.serviceID).Msg("failed to deregister from consul")
		return
	}

	r.logger.Info().Str("service_id", r.serviceID).Msg("deregistered from consul")
	r.serviceID = ""
}
