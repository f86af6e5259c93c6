package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/models"
)

// peekBody reads the request body for validation and restores it so the
// forwarded request still carries it.
func peekBody(r *http.Request, out any) error {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

type bookingBody struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func validateBookingBody(r *http.Request) error {
	var body bookingBody
	if err := peekBody(r, &body); err != nil {
		return err
	}

	now := time.Now()
	switch {
	case body.ItemID <= 0:
		return fmt.Errorf("itemId must be positive")
	case body.Start.IsZero() || body.End.IsZero():
		return fmt.Errorf("start and end are required")
	case body.Start.Before(now):
		return fmt.Errorf("start must not be in the past")
	case !body.End.After(now):
		return fmt.Errorf("end must be in the future")
	case !body.End.After(body.Start):
		return fmt.Errorf("end must be after start")
	}
	return nil
}

type userBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func validateNewUserBody(r *http.Request) error {
	var body userBody
	if err := peekBody(r, &body); err != nil {
		return err
	}
	if strings.TrimSpace(body.Name) == "" {
		return fmt.Errorf("name must not be blank")
	}
	return validateEmail(body.Email)
}

type userPatchBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func validateUserPatchBody(r *http.Request) error {
	var body userPatchBody
	if err := peekBody(r, &body); err != nil {
		return err
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		return fmt.Errorf("name must not be blank")
	}
	if body.Email != nil {
		return validateEmail(*body.Email)
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email must not be blank")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("email is malformed")
	}
	return nil
}

type itemBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

func validateNewItemBody(r *http.Request) error {
	var body itemBody
	if err := peekBody(r, &body); err != nil {
		return err
	}
	switch {
	case strings.TrimSpace(body.Name) == "":
		return fmt.Errorf("name must not be blank")
	case strings.TrimSpace(body.Description) == "":
		return fmt.Errorf("description must not be blank")
	case body.Available == nil:
		return fmt.Errorf("available is required")
	}
	return nil
}

type textBody struct {
	Text string `json:"text"`
}

func validateCommentBody(r *http.Request) error {
	var body textBody
	if err := peekBody(r, &body); err != nil {
		return err
	}
	if strings.TrimSpace(body.Text) == "" {
		return fmt.Errorf("text must not be blank")
	}
	return nil
}

type descriptionBody struct {
	Description string `json:"description"`
}

func validateRequestBody(r *http.Request) error {
	var body descriptionBody
	if err := peekBody(r, &body); err != nil {
		return err
	}
	if strings.TrimSpace(body.Description) == "" {
		return fmt.Errorf("description must not be blank")
	}
	return nil
}

func validateApproved(r *http.Request) error {
	raw := r.URL.Query().Get("approved")
	if raw != "true" && raw != "false" {
		return fmt.Errorf("approved must be true or false")
	}
	return nil
}

func validateState(r *http.Request) error {
	raw := r.URL.Query().Get("state")
	if _, ok := models.ParseState(raw); !ok {
		return fmt.Errorf("Unknown state: %s", raw)
	}
	return nil
}

func validatePaging(r *http.Request) error {
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return fmt.Errorf("from must not be negative")
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return fmt.Errorf("size must be positive")
		}
	}
	return nil
}
