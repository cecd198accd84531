package discovery

import (
	"errors"
	"io"
	"testing"

	consulapi "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAgent struct{ mock.Mock }

func (m *MockAgent) ServiceRegister(service *consulapi.AgentServiceRegistration) error {
	return m.Called(service).Error(0)
}

func (m *MockAgent) ServiceDeregister(serviceID string) error {
	return m.Called(serviceID).Error(0)
}

func TestConsulRegistrar_RegisterAndDeregister(t *testing.T) {
	logger := zerolog.New(io.Discard)
	agent := &MockAgent{}

	agent.On("ServiceRegister", mock.MatchedBy(func(s *consulapi.AgentServiceRegistration) bool {
		return s.ID == "session-service-10.0.0.5-8000" &&
			s.Name == "session-service" &&
			s.Port == 8000 &&
			s.Check.HTTP == "http://10.0.0.5:8000/health" &&
			s.Check.Interval == "10s"
	})).Return(nil).Once()
	agent.On("ServiceDeregister", "session-service-10.0.0.5-8000").Return(nil).Once()

	r := NewConsulRegistrarWithAgent(&logger, agent)
	require.NoError(t, r.Register(Registration{
		Name:       "session-service",
		Host:       "10.0.0.5",
		Port:       8000,
		HealthPath: "/health",
	}))

	r.Deregister()
	// A second call is a no-op.
	r.Deregister()

	agent.AssertExpectations(t)
}

func TestConsulRegistrar_RegisterError(t *testing.T) {
	logger := zerolog.New(io.Discard)
	agent := &MockAgent{}
	agent.On("ServiceRegister", mock.Anything).Return(errors.New("connection refused"))

	r := NewConsulRegistrarWithAgent(&logger, agent)
	err := r.Register(Registration{Name: "session-service", Host: "localhost", Port: 8000, HealthPath: "/health"})

	assert.ErrorContains(t, err, "connection refused")

	r.Deregister()
	agent.AssertNotCalled(t, "ServiceDeregister", mock.Anything)
}
