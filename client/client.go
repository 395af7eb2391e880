package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// userHeader carries the identity of the acting user.
const userHeader = "X-XWIKI-USER"

// StructuredData defines operations for our client.
type StructuredData interface {
	GetApplications() ([]string, error)
	GetApplication(appID string) (ApplicationSummary, error)
	GetSchema(appID string) (protocol.Schema, error)
	GetItems(appID string, opts protocol.ItemQueryOptions) (*protocol.ItemResultset, error)
	GetItem(appID string, itemID string) (*protocol.ItemRecord, error)
	StoreItem(appID string, itemID string, record *protocol.ItemRecord) (protocol.OperationResult, error)
	DeleteItem(appID string, itemID string) (protocol.OperationResult, error)
	GetItemDocument(appID string, itemID string) (*protocol.DocumentMetadata, error)
	StoreItemDocument(appID string, itemID string, meta *protocol.DocumentMetadata) (protocol.OperationResult, error)
	GetHttpClient() *http.Client
	Ping() (bool, error)
}

// ApplicationSummary is the response of the single-application endpoint:
// the application as a whole, schema and items included.
type ApplicationSummary struct {
	Name      string                  `json:"name"`
	ClassName string                  `json:"className"`
	Schema    protocol.Schema         `json:"schema"`
	Items     *protocol.ItemResultset `json:"items"`
}

// Config defines the bare minimum that must be statically configured for a
// Client.
type Config struct {
	// Remote specifies the full API prefix: http://{host}:{port}/{prefix}.
	// Actual API endpoints are appended to this string.
	Remote string
	// Wiki selects a wiki other than the server default. Optional.
	Wiki string
	// User is the full name of the acting user's profile document. When
	// empty the server treats requests as the guest user.
	User string
}

// Client implements StructuredData against a running server instance.
type Client struct {
	httpClient *http.Client
	Conf       Config
}

// Verify that Client implements StructuredData.
var _ StructuredData = (*Client)(nil)

// NewClient instantiates a new Client for the remote named in the
// configuration.
func NewClient(conf Config) *Client {
	return &Client{httpClient: &http.Client{}, Conf: conf}
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

// Ping checks if the server is up.
func (c *Client) Ping() (bool, error) {
	resp, err := c.doGet(c.Conf.Remote + "/ping")
	if err != nil {
		return false, fmt.Errorf("error performing request: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

// GetApplications lists the identifiers of the applications available in the
// wiki.
func (c *Client) GetApplications() ([]string, error) {
	var ret struct {
		Applications []string `json:"applications"`
	}
	if err := c.getJSON(c.base()+"/applications", &ret); err != nil {
		return nil, err
	}
	return ret.Applications, nil
}

// GetApplication fetches the summary of one application.
func (c *Client) GetApplication(appID string) (ApplicationSummary, error) {
	var ret ApplicationSummary
	err := c.getJSON(c.appURL(appID), &ret)
	return ret, err
}

// GetSchema fetches the field descriptors of an application.
func (c *Client) GetSchema(appID string) (protocol.Schema, error) {
	var ret protocol.Schema
	err := c.getJSON(c.appURL(appID)+"/schema", &ret)
	return ret, err
}

// GetItems lists the item records of an application, applying the given
// query options.
func (c *Client) GetItems(appID string, opts protocol.ItemQueryOptions) (*protocol.ItemResultset, error) {
	uri := c.appURL(appID) + "/items"
	if q := encodeOptions(opts); q != "" {
		uri += "?" + q
	}
	resp, err := c.doGet(uri)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}
	ret := protocol.NewItemResultset()
	if err := json.NewDecoder(resp.Body).Decode(ret); err != nil {
		return nil, fmt.Errorf("could not decode response: %v", err)
	}
	return ret, nil
}

// GetItem fetches one item record by its identifier.
func (c *Client) GetItem(appID string, itemID string) (*protocol.ItemRecord, error) {
	resp, err := c.doGet(c.itemURL(appID, itemID))
	if err != nil {
		return nil, fmt.Errorf("error performing request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}
	ret := protocol.NewItemRecord()
	if err := json.NewDecoder(resp.Body).Decode(ret); err != nil {
		return nil, fmt.Errorf("could not decode response: %v", err)
	}
	return ret, nil
}

// StoreItem creates or updates an item. Access failures are reported in the
// returned OperationResult, not as an error.
func (c *Client) StoreItem(appID string, itemID string, record *protocol.ItemRecord) (protocol.OperationResult, error) {
	var ret protocol.OperationResult
	resp, err := c.doMethod("PUT", c.itemURL(appID, itemID), record)
	if err != nil {
		return ret, fmt.Errorf("error performing request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ret, errorFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&ret); err != nil {
		return ret, fmt.Errorf("could not decode response: %v", err)
	}
	return ret, nil
}

// DeleteItem removes an item. Access failures are reported in the returned
// OperationResult, not as an error.
func (c *Client) DeleteItem(appID string, itemID string) (protocol.OperationResult, error) {
	var ret protocol.OperationResult
	resp, err := c.doMethod("DELETE", c.itemURL(appID, itemID), nil)
	if err != nil {
		return ret, fmt.Errorf("error performing request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ret, errorFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&ret); err != nil {
		return ret, fmt.Errorf("could not decode response: %v", err)
	}
	return ret, nil
}

// GetItemDocument fetches the metadata of the document hosting an item.
func (c *Client) GetItemDocument(appID string, itemID string) (*protocol.DocumentMetadata, error) {
	resp, err := c.doGet(c.itemURL(appID, itemID) + "/document")
	if err != nil {
		return nil, fmt.Errorf("error performing request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}
	ret := &protocol.DocumentMetadata{}
	if err := json.NewDecoder(resp.Body).Decode(ret); err != nil {
		return nil, fmt.Errorf("could not decode response: %v", err)
	}
	return ret, nil
}

// StoreItemDocument patches the metadata of the document hosting an item.
// Only the fields assigned on meta are written back.
func (c *Client) StoreItemDocument(appID string, itemID string, meta *protocol.DocumentMetadata) (protocol.OperationResult, error) {
	var ret protocol.OperationResult
	resp, err := c.doMethod("PUT", c.itemURL(appID, itemID)+"/document", meta)
	if err != nil {
		return ret, fmt.Errorf("error performing request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ret, errorFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&ret); err != nil {
		return ret, fmt.Errorf("could not decode response: %v", err)
	}
	return ret, nil
}

// base returns the API prefix, with the wiki selector when one is
// configured.
func (c *Client) base() string {
	if c.Conf.Wiki == "" {
		return c.Conf.Remote
	}
	return c.Conf.Remote + "/wikis/" + url.PathEscape(c.Conf.Wiki)
}

func (c *Client) appURL(appID string) string {
	return c.base() + "/applications/" + url.PathEscape(appID)
}

func (c *Client) itemURL(appID string, itemID string) string {
	return c.appURL(appID) + "/items/" + url.PathEscape(itemID)
}

func (c *Client) getJSON(uri string, into interface{}) error {
	resp, err := c.doGet(uri)
	if err != nil {
		return fmt.Errorf("error performing request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errorFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("could not decode response: %v", err)
	}
	return nil
}

func (c *Client) doGet(uri string) (*http.Response, error) {
	return c.doMethod("GET", uri, nil)
}

func (c *Client) doMethod(method string, uri string, body interface{}) (*http.Response, error) {
	var req *http.Request
	var err error
	if body != nil {
		jsonBody, merr := json.Marshal(body)
		if merr != nil {
			return nil, fmt.Errorf("could not marshal json body: %v", merr)
		}
		req, err = http.NewRequest(method, uri, bytes.NewBuffer(jsonBody))
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequest(method, uri, nil)
	}
	if err != nil {
		return nil, err
	}
	if c.Conf.User != "" {
		req.Header.Set(userHeader, c.Conf.User)
	}
	return c.httpClient.Do(req)
}

// encodeOptions serializes the query options the way the server parses them.
func encodeOptions(opts protocol.ItemQueryOptions) string {
	q := url.Values{}
	if opts.Query != "" {
		q.Set("query", opts.Query)
	}
	if opts.Hidden != "" {
		q.Set("hidden", opts.Hidden)
	}
	if opts.Order != "" {
		q.Set("order", opts.Order)
	}
	if opts.Limit != 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset != 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if len(opts.Properties) > 0 {
		q.Set("properties", strings.Join(opts.Properties, ","))
	}
	return q.Encode()
}

func errorFromResponse(resp *http.Response) error {
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return fmt.Errorf("%d %s", resp.StatusCode, string(body))
}
