// Package testutil provides test fixtures for the order service: a stub
// inventory service run as a lifecycle component, and listeners that
// reproduce the transport failures an outbound call must classify.
//
//	stub := testutil.NewInventoryStub(map[string]int{"iphone_15": 10})
//	testutil.T(t).Setup(stub)
//	client, _ := inventory.NewClient(stub.URL(), httpclient.DefaultTimeoutPolicy())
package testutil
