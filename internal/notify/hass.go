package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// HassInvoker triggers Home Assistant scripts over its REST API. Used
// to drive the LED indicator reflecting timer state.
type HassInvoker struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHassInvoker(baseURL, token string) *HassInvoker {
	return &HassInvoker{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Configured reports whether a bearer token is on file.
func (h *HassInvoker) Configured() bool {
	return h.token != ""
}

// Invoke turns on the named script entity.
func (h *HassInvoker) Invoke(signal string) bool {
	if !h.Configured() {
		log.Printf("[warn] HASS_TOKEN not configured, skipping script %s", signal)
		return false
	}

	payload, err := json.Marshal(map[string]string{
		"entity_id": "script." + signal,
	})
	if err != nil {
		log.Printf("[error] marshal hass payload: %v", err)
		return false
	}

	url := fmt.Sprintf("%s/api/services/script/turn_on", h.baseURL)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		log.Printf("[error] build hass request: %v", err)
		return false
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		log.Printf("[error] call hass script %s: %v", signal, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[error] hass script %s failed: %d", signal, resp.StatusCode)
		return false
	}

	return true
}
