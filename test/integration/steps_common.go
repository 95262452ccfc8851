package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	rememberedID string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a SWAPI server is running$`, s.aSWAPIServerIsRunning)
	sc.Step(`^the "([^"]*)" collection is empty$`, s.theCollectionIsEmpty)
	sc.Step(`^a user "([^"]*)" exists with password "([^"]*)"$`, s.aUserExistsWithPassword)

	// Request steps
	sc.Step(`^I POST to "([^"]*)" with body:$`, s.iPOSTWithBody)
	sc.Step(`^I PUT to "([^"]*)" with body:$`, s.iPUTWithBody)
	sc.Step(`^I GET "([^"]*)"$`, s.iGET)
	sc.Step(`^I GET "([^"]*)" as "([^"]*)" with password "([^"]*)"$`, s.iGETAs)
	sc.Step(`^I DELETE "([^"]*)"$`, s.iDELETE)
	sc.Step(`^I remember the response id$`, s.iRememberTheResponseID)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)
	sc.Step(`^the response field "([^"]*)" should not be empty$`, s.theResponseFieldShouldNotBeEmpty)
	sc.Step(`^the response should not contain "([^"]*)"$`, s.theResponseShouldNotContain)
	sc.Step(`^the response should be a list of (\d+) items?$`, s.theResponseShouldBeAListOf)

	// Database steps
	sc.Step(`^the "([^"]*)" collection should have (\d+) documents?$`, s.theCollectionShouldHave)
}

// Background steps

func (s *StepsContext) aSWAPIServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) theCollectionIsEmpty(resource string) error {
	table, err := tableFor(resource)
	if err != nil {
		return err
	}
	return s.tc.DB.Exec("DELETE FROM " + table).Error
}

func (s *StepsContext) aUserExistsWithPassword(username, password string) error {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}
	if err := s.do(http.MethodPost, "/users", body, nil); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to register %s: %d %s", username, s.response.StatusCode, s.responseBody)
	}
	return nil
}

// Request steps

func (s *StepsContext) iPOSTWithBody(path string, body *godog.DocString) error {
	return s.do(http.MethodPost, path, []byte(s.expand(body.Content)), nil)
}

func (s *StepsContext) iPUTWithBody(path string, body *godog.DocString) error {
	return s.do(http.MethodPut, path, []byte(s.expand(body.Content)), nil)
}

func (s *StepsContext) iGET(path string) error {
	return s.do(http.MethodGet, path, nil, nil)
}

func (s *StepsContext) iGETAs(path, username, password string) error {
	return s.do(http.MethodGet, path, nil, func(req *http.Request) {
		req.SetBasicAuth(username, password)
	})
}

func (s *StepsContext) iDELETE(path string) error {
	return s.do(http.MethodDelete, path, nil, nil)
}

func (s *StepsContext) iRememberTheResponseID() error {
	id, err := s.field("id")
	if err != nil {
		return err
	}
	s.rememberedID = fmt.Sprint(id)
	return nil
}

// do sends a request to the server and records the response
func (s *StepsContext) do(method, path string, body []byte, configure func(*http.Request)) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+s.expand(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if configure != nil {
		configure(req)
	}

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

// expand replaces {id} with the remembered document id
func (s *StepsContext) expand(text string) string {
	return strings.ReplaceAll(text, "{id}", s.rememberedID)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldBe(path, expected string) error {
	value, err := s.field(path)
	if err != nil {
		return err
	}
	if actual := fmt.Sprint(value); actual != expected {
		return fmt.Errorf("expected %s to be %q, got %q", path, expected, actual)
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldNotBeEmpty(path string) error {
	value, err := s.field(path)
	if err != nil {
		return err
	}
	if value == nil || fmt.Sprint(value) == "" {
		return fmt.Errorf("expected %s to be set", path)
	}
	return nil
}

func (s *StepsContext) theResponseShouldNotContain(text string) error {
	if bytes.Contains(s.responseBody, []byte(text)) {
		return fmt.Errorf("response unexpectedly contains %q: %s", text, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldBeAListOf(count int) error {
	var items []json.RawMessage
	if err := json.Unmarshal(s.responseBody, &items); err != nil {
		return fmt.Errorf("response is not a list: %w", err)
	}
	if len(items) != count {
		return fmt.Errorf("expected %d items, got %d", count, len(items))
	}
	return nil
}

// field looks up a dotted path such as "user.username" in a JSON object body
func (s *StepsContext) field(path string) (any, error) {
	var current any
	if err := json.Unmarshal(s.responseBody, &current); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	for _, key := range strings.Split(path, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: not an object", path)
		}
		if current, ok = object[key]; !ok {
			return nil, fmt.Errorf("%s: field %q missing in %s", path, key, s.responseBody)
		}
	}
	return current, nil
}

// Database steps

func (s *StepsContext) theCollectionShouldHave(resource string, count int) error {
	table, err := tableFor(resource)
	if err != nil {
		return err
	}
	var actual int64
	if err := s.tc.DB.Table(table).Count(&actual).Error; err != nil {
		return err
	}
	if actual != int64(count) {
		return fmt.Errorf("expected %d %s, found %d", count, resource, actual)
	}
	return nil
}
