package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// OmapiRegistry wraps a Registry with the counters an omapi.Client
// reports through its MetricsRecorder interface. It satisfies that
// interface structurally; package omapi never imports this package.
type OmapiRegistry struct {
	*Registry

	requests          *prometheus.CounterVec
	responses         *prometheus.CounterVec
	signatureFailures prometheus.Counter
	handshakes        *prometheus.CounterVec
}

// NewOmapiRegistry builds a registry named name with the omapi client
// counters registered against it.
func NewOmapiRegistry(name string) *OmapiRegistry {
	r := &OmapiRegistry{
		Registry: NewRegistry(name),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "omapi",
			Name:      "requests_total",
			Help:      "OMAPI requests sent, by opcode.",
		}, []string{"opcode"}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "omapi",
			Name:      "responses_total",
			Help:      "OMAPI responses received, by opcode and status.",
		}, []string{"opcode", "status"}),
		signatureFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "omapi",
			Name:      "signature_failures_total",
			Help:      "Responses dropped for failing signature verification.",
		}),
		handshakes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "omapi",
			Name:      "handshakes_total",
			Help:      "Authenticator handshakes, by result.",
		}, []string{"result"}),
	}
	r.MustRegister(r.requests, r.responses, r.signatureFailures, r.handshakes)
	return r
}

func (r *OmapiRegistry) ObserveRequest(opcode uint32) {
	r.requests.WithLabelValues(strconv.FormatUint(uint64(opcode), 10)).Inc()
}

func (r *OmapiRegistry) ObserveResponse(opcode uint32, status string) {
	r.responses.WithLabelValues(strconv.FormatUint(uint64(opcode), 10), status).Inc()
}

func (r *OmapiRegistry) ObserveSignatureFailure() {
	r.signatureFailures.Inc()
}

func (r *OmapiRegistry) ObserveHandshake(result string) {
	r.handshakes.WithLabelValues(result).Inc()
}
