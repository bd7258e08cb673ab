package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const mosquittoConf = `listener 1883
allow_anonymous true
persistence false
`

func startMosquitto(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mosquitto.conf")
	require.NoError(t, os.WriteFile(path, []byte(mosquittoConf), 0o644))

	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{{
			HostFilePath:      path,
			ContainerFilePath: "/mosquitto/config/mosquitto.conf",
			FileMode:          0o644,
		}},
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cont.Terminate(context.Background()) })

	host, err := cont.Host(ctx)
	require.NoError(t, err)
	port, err := cont.MappedPort(ctx, "1883")
	require.NoError(t, err)
	return fmt.Sprintf("tcp://%s:%s", host, port.Port())
}

// TestPublisherIntegration publishes through a real Mosquitto broker.
func TestPublisherIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	broker := startMosquitto(t)

	sub := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("sub"))
	require.Eventually(t, func() bool {
		tok := sub.Connect()
		tok.Wait()
		return tok.Error() == nil
	}, 5*time.Second, 100*time.Millisecond)
	defer sub.Disconnect(100)

	msgCh := make(chan []byte, 1)
	tok := sub.Subscribe("it/simulation", 1, func(_ paho.Client, m paho.Message) { msgCh <- m.Payload() })
	tok.Wait()
	require.NoError(t, tok.Error())

	pub, err := NewPublisher(Config{Broker: broker, TopicPrefix: "it", QoS: 1})
	require.NoError(t, err)
	defer func() { _ = pub.Close() }()
	require.NoError(t, pub.PublishJSON("simulation", map[string]float64{"end_of_life_capacity_kwh": 3.2}))

	select {
	case got := <-msgCh:
		var body map[string]float64
		require.NoError(t, json.Unmarshal(got, &body))
		assert.InDelta(t, 3.2, body["end_of_life_capacity_kwh"], 1e-9)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for message")
	}
}
