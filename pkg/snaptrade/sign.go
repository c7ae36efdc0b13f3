package snaptrade

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// signaturePayload is serialised with its keys in alphabetical order, which
// matches the canonical form the API verifies against.
type signaturePayload struct {
	Content json.RawMessage `json:"content"`
	Path    string          `json:"path"`
	Query   string          `json:"query"`
}

// sign computes base64(HMAC-SHA256(key, canonical payload)).
func sign(key, path, query string, body []byte) (string, error) {
	content, err := canonicalJSON(body)
	if err != nil {
		return "", fmt.Errorf("canonicalize body: %w", err)
	}

	msg, err := marshalNoEscape(signaturePayload{
		Content: content,
		Path:    path,
		Query:   query,
	})
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(msg)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// canonicalJSON re-encodes body with sorted object keys and no insignificant
// whitespace. An empty body becomes JSON null.
func canonicalJSON(body []byte) (json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return json.RawMessage("null"), nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	out, err := marshalNoEscape(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(out), nil
}

func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
