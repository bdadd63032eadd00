package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// SendWhatsAppNotification pings the back office through the fonnte.com API.
// Sent best-effort when a new settlement solicitation arrives; failures are
// only logged by the caller, never surfaced to the submitter.
func SendWhatsAppNotification(phone, message string) error {
	apiURL := "https://api.fonnte.com/send"
	token := os.Getenv("FONNTE_TOKEN")

	if token == "" {
		return fmt.Errorf("FONNTE_TOKEN not set")
	}

	payload := map[string]string{
		"target":  phone,
		"message": message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	return nil
}

// FormatSolicitationMessage renders the admin alert for a new solicitation.
func FormatSolicitationMessage(number uint64, customerName string, orderCount int, total string) string {
	message := "NEW SETTLEMENT SOLICITATION\n\n"
	message += fmt.Sprintf("Number: #%d\n", number)
	message += fmt.Sprintf("Customer: %s\n", customerName)
	message += fmt.Sprintf("Orders: %d\n", orderCount)
	message += fmt.Sprintf("Proposed total: %s\n", total)
	message += fmt.Sprintf("\n_Time: %s_", time.Now().Format("02/01/2006 15:04:05"))

	return message
}
