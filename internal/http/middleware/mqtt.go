package middleware

import (
	"encoding/json"
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

var (
	mqttClient mqtt.Client
	mqttMutex  sync.Mutex
	brokerURL  = "tcp://0.0.0.0:1883" // Default MQTT broker URL
)

var messagePubHandler mqtt.MessageHandler = func(client mqtt.Client, msg mqtt.Message) {
	log.Debug().Str("topic", msg.Topic()).Bytes("payload", msg.Payload()).Msg("received MQTT message")
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// SetBrokerURL allows configuration of the MQTT broker URL
func SetBrokerURL(url string) {
	brokerURL = url
}

// InitMQTT connects the server-side publisher client. Playback nodes
// subscribe to their own node/<id>/commands topic.
func InitMQTT(clientName string) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.SetDefaultPublishHandler(messagePubHandler)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler
	opts.SetAutoReconnect(true)

	mqttMutex.Lock()
	defer mqttMutex.Unlock()

	mqttClient = mqtt.NewClient(opts)
	if token := mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}
	return nil
}

// SendMessageToNode publishes a raw message to a node's command topic.
func SendMessageToNode(nodeID int, message []byte) error {
	mqttMutex.Lock()
	client := mqttClient
	mqttMutex.Unlock()

	if client == nil || !client.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	topic := fmt.Sprintf("node/%d/commands", nodeID)
	token := client.Publish(topic, 1, false, message)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to send message to node %d: %v", nodeID, token.Error())
	}
	return nil
}

// NotifyScheduleUpdated tells the affected nodes to re-pull their schedule.
// Delivery is best-effort; nodes also poll on a timer.
func NotifyScheduleUpdated(nodeIDs []int) {
	payload, _ := json.Marshal(map[string]string{"type": "schedule_updated"})
	for _, nodeID := range nodeIDs {
		if err := SendMessageToNode(nodeID, payload); err != nil {
			log.Warn().Err(err).Int("node_id", nodeID).Msg("schedule update notification failed")
		}
	}
}

// CleanupMQTT disconnects the publisher client.
func CleanupMQTT() {
	mqttMutex.Lock()
	defer mqttMutex.Unlock()

	if mqttClient != nil {
		mqttClient.Disconnect(250)
		mqttClient = nil
		log.Info().Msg("MQTT client disconnected")
	}
}
