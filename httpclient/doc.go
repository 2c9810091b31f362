// Package httpclient provides an HTTP client bound to one remote service,
// with a connect timeout and a response timeout enforced on every call.
//
// Construction validates the base URL and both timeouts and fails with a
// CONFIGURATION_ERROR AppError, so misconfiguration stops the process at
// startup instead of surfacing on the first call. Each call is a single
// attempt; failures are *Error values carrying the status code, elapsed
// time and a Cause (connect timeout, response timeout, connection refused,
// connection, protocol, status, canceled).
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    Name:     "inventory",
//	    BaseURL:  "http://localhost:8082",
//	    Timeouts: httpclient.DefaultTimeoutPolicy(),
//	})
//
//	resp, err := httpclient.Get[bool](ctx, client, "/api/inventory",
//	    httpclient.WithQuery(map[string]string{"skuCode": "iphone_15"}))
//	if httpclient.IsResponseTimeout(err) {
//	    // the remote accepted the connection but did not answer in time
//	}
package httpclient
