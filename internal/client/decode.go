package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/podlanding/podcast-discovery/internal/apperrors"
	"github.com/podlanding/podcast-discovery/internal/models"
)

// decodeShows converts the catalog body to UTF-8 using the declared charset,
// decodes the array and validates each record.
func decodeShows(body []byte, contentType string) ([]models.RawShow, error) {
	utf8Body, err := toUTF8(body, contentType)
	if err != nil {
		return nil, apperrors.NewDecodeError(err.Error())
	}

	if !bytes.HasPrefix(bytes.TrimSpace(utf8Body), []byte("[")) {
		return nil, apperrors.NewDecodeError("expected a JSON array of shows")
	}

	var records []json.RawMessage
	if err := json.Unmarshal(utf8Body, &records); err != nil {
		return nil, apperrors.NewDecodeError(err.Error())
	}

	shows := make([]models.RawShow, 0, len(records))
	for i, record := range records {
		var raw models.RawShow
		if err := json.Unmarshal(record, &raw); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return nil, &apperrors.ErrDecode{Index: i, Field: typeErr.Field, Reason: fmt.Sprintf("has type %s", typeErr.Value)}
			}
			return nil, &apperrors.ErrDecode{Index: i, Reason: err.Error()}
		}
		if err := raw.Validate(i); err != nil {
			return nil, err
		}
		shows = append(shows, raw)
	}
	return shows, nil
}

// toUTF8 transcodes body when the Content-Type names a charset other than
// UTF-8. Bodies without a charset parameter are passed through unchanged.
func toUTF8(body []byte, contentType string) ([]byte, error) {
	if contentType == "" {
		return body, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}
	label := strings.ToLower(strings.TrimSpace(params["charset"]))
	if label == "" || label == "utf-8" || label == "utf8" {
		return body, nil
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", label, err)
	}
	return io.ReadAll(r)
}
