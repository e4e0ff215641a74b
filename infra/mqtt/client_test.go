package mqtt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"os"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremon "github.com/vanditkanudia/gridgap/core/monitoring"
	coremqtt "github.com/vanditkanudia/gridgap/core/mqtt"
	"github.com/vanditkanudia/gridgap/core/model"
)

// helper to generate self-signed cert
func generateCert(t *testing.T) (certFile, keyFile, caFile string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("gen key: %v", err)
	}
	tmpl := x509.Certificate{SerialNumber: big.NewInt(1), Subject: pkix.Name{CommonName: "test"}, NotBefore: time.Now(), NotAfter: time.Now().Add(time.Hour)}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("create cert: %v", err)
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})

	dir := t.TempDir()
	certFile = dir + "/cert.pem"
	keyFile = dir + "/key.pem"
	caFile = dir + "/ca.pem"
	if err := os.WriteFile(certFile, certPEM, 0644); err != nil {
		t.Fatalf("write cert: %v", err)
	}
	if err := os.WriteFile(keyFile, keyPEM, 0644); err != nil {
		t.Fatalf("write key: %v", err)
	}
	if err := os.WriteFile(caFile, certPEM, 0644); err != nil {
		t.Fatalf("write ca: %v", err)
	}
	return
}

func TestLoadTLSConfig(t *testing.T) {
	cert, key, ca := generateCert(t)
	cfg := Config{UseTLS: true, ClientCert: cert, ClientKey: key, CABundle: ca}
	tlsCfg, err := cfg.LoadTLSConfig()
	if err != nil {
		t.Fatalf("load tls: %v", err)
	}
	if len(tlsCfg.Certificates) == 0 {
		t.Fatalf("no certs loaded")
	}
	if tlsCfg.RootCAs == nil {
		t.Fatalf("no root CAs")
	}
}

func TestNewClientOptionsAuth(t *testing.T) {
	opts, err := NewClientOptions(Config{Broker: "tcp://localhost:1883", ClientID: "id", Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("opts: %v", err)
	}
	if opts.Username != "u" || opts.Password != "p" {
		t.Fatalf("auth not set")
	}
}

func withMockClient(t *testing.T, mc *mockClient) {
	t.Helper()
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() {
		newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) }
	})
}

func TestPublishGapTopicAndQoS(t *testing.T) {
	mc := &mockClient{connected: true}
	withMockClient(t, mc)
	pub, err := NewGapPublisher(Config{Broker: "tcp://localhost:1883", QoS: map[string]byte{"results": 1}})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	gap := model.GapMetrics{Group: "NORDIC", Year: 2030, DispatchableShortfallMW: 120}
	if err := pub.PublishGap("run-1", gap); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(mc.published) != 1 {
		t.Fatalf("expected 1 publish got %d", len(mc.published))
	}
	p := mc.published[0]
	if p.topic != "gridgap/results/NORDIC" {
		t.Fatalf("topic = %s", p.topic)
	}
	if p.qos != 1 {
		t.Fatalf("qos = %d", p.qos)
	}
	if !p.retained {
		t.Fatalf("gap results must be retained")
	}
	var msg struct {
		RunID string           `json:"run_id"`
		Gap   model.GapMetrics `json:"gap"`
	}
	if err := json.Unmarshal(p.payload, &msg); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if msg.RunID != "run-1" || msg.Gap.DispatchableShortfallMW != 120 {
		t.Fatalf("payload fields wrong: %+v", msg)
	}
}

func TestPublishGapRetry(t *testing.T) {
	mc := &mockClient{connected: true, publishErrs: []error{fmt.Errorf("net fail"), nil}}
	withMockClient(t, mc)
	pub, err := NewGapPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	if err := pub.PublishGap("run-1", model.GapMetrics{Group: "NORDIC"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(mc.published) != 2 {
		t.Fatalf("expected retry, got %d publishes", len(mc.published))
	}
}

func TestPublishGapErrorCaptured(t *testing.T) {
	mc := &mockClient{connected: true, publishErrs: []error{
		fmt.Errorf("net fail"), fmt.Errorf("net fail"),
	}}
	withMockClient(t, mc)
	mon := &recordMonitor{}
	coremon.Init(mon)
	defer coremon.Init(coremon.NopMonitor{})

	pub, err := NewGapPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	if err := pub.PublishGap("run-1", model.GapMetrics{Group: "NORDIC"}); err == nil {
		t.Fatalf("expected error")
	}
	if mon.err == nil {
		t.Fatalf("error not captured")
	}
	if mon.tags["group"] != "NORDIC" || mon.tags["module"] != "mqtt" {
		t.Fatalf("tags not set: %v", mon.tags)
	}
}

func TestPublishGapNotConnected(t *testing.T) {
	mc := &mockClient{connected: false}
	withMockClient(t, mc)
	pub, err := NewGapPublisher(Config{Broker: "tcp://localhost:1883"})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	err = pub.PublishGap("run-1", model.GapMetrics{Group: "NORDIC"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, coremqtt.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected got %v", err)
	}
	if len(mc.published) != 0 {
		t.Fatalf("unexpected publish while disconnected")
	}
}

func TestLWTConfigured(t *testing.T) {
	mc := &mockClient{connected: true}
	withMockClient(t, mc)
	pub, err := NewGapPublisher(Config{Broker: "tcp://localhost:1883", LWTTopic: "gridgap/status", LWTPayload: "offline", LWTQoS: 1})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	if !mc.opts.WillEnabled {
		t.Fatalf("will not enabled")
	}
	if mc.opts.WillTopic != "gridgap/status" || string(mc.opts.WillPayload) != "offline" {
		t.Fatalf("will options incorrect")
	}
	pub.Close()
	if len(mc.published) != 0 {
		t.Fatalf("unexpected publish on disconnect")
	}
}

type recordMonitor struct {
	err  error
	tags map[string]string
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.err = err
	r.tags = tags
}
func (r *recordMonitor) Recover()            {}
func (r *recordMonitor) Flush(time.Duration) {}

// mockClient implements pahoClient for tests.
type mockClient struct {
	opts      *paho.ClientOptions
	connected bool
	published []struct {
		topic    string
		qos      byte
		retained bool
		payload  []byte
	}
	publishErrs []error
}

func (m *mockClient) IsConnected() bool { return m.connected }
func (m *mockClient) Connect() paho.Token {
	if m.opts != nil && m.opts.OnConnect != nil {
		m.opts.OnConnect(nil)
	}
	return &dummyToken{}
}
func (m *mockClient) Disconnect(uint) {}
func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	m.published = append(m.published, struct {
		topic    string
		qos      byte
		retained bool
		payload  []byte
	}{topic, qos, retained, payload.([]byte)})
	if len(m.publishErrs) > 0 {
		err := m.publishErrs[0]
		m.publishErrs = m.publishErrs[1:]
		return &dummyToken{err: err}
	}
	return &dummyToken{}
}

type dummyToken struct{ err error }

func (d dummyToken) Wait() bool                     { return true }
func (d dummyToken) WaitTimeout(time.Duration) bool { return true }
func (d dummyToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (d dummyToken) Error() error                   { return d.err }
