package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// uploadTicket is the signed-upload grant issued by the content API. It lets
// the server post a file straight to the asset host without holding the
// host's credentials.
type uploadTicket struct {
	Signature string      `json:"signature"`
	Timestamp json.Number `json:"timestamp"`
	CloudName string      `json:"cloud_name"`
	APIKey    string      `json:"api_key"`
	Folder    string      `json:"folder"`
}

// UploadImage pushes an image to the asset host using a signed ticket from
// the content API and returns the public URL, or "" when any leg fails. The
// caller is expected to have pre-processed the image already.
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte) string {
	ticket, ok := c.uploadSignature(ctx)
	if !ok {
		return ""
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	file, err := form.CreateFormFile("file", filename)
	if err != nil {
		log.Errorf("api: upload: build form: %s", err)
		return ""
	}
	if _, err := file.Write(data); err != nil {
		log.Errorf("api: upload: write file part: %s", err)
		return ""
	}
	form.WriteField("api_key", ticket.APIKey)
	form.WriteField("timestamp", ticket.Timestamp.String())
	form.WriteField("signature", ticket.Signature)
	form.WriteField("folder", ticket.Folder)
	if err := form.Close(); err != nil {
		log.Errorf("api: upload: close form: %s", err)
		return ""
	}

	url := c.uploadHost + "/v1_1/" + ticket.CloudName + "/image/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		log.Errorf("api: upload: %s", err)
		return ""
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("api: upload: %s", err)
		return ""
	}
	defer resp.Body.Close()

	if !ok2xx(resp) {
		log.Errorf("api: upload: asset host status %d", resp.StatusCode)
		return ""
	}

	var uploaded struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		log.Errorf("api: upload: decode asset host response: %s", err)
		return ""
	}
	return uploaded.SecureURL
}

func (c *Client) uploadSignature(ctx context.Context) (uploadTicket, bool) {
	resp, err := c.do(ctx, http.MethodGet, "/storage/signature", nil)
	if err != nil {
		log.Errorf("api: upload signature: %s", err)
		return uploadTicket{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Errorf("api: upload signature: status %d", resp.StatusCode)
		return uploadTicket{}, false
	}

	var ticket uploadTicket
	if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
		log.Errorf("api: upload signature: decode: %s", err)
		return uploadTicket{}, false
	}
	return ticket, true
}
