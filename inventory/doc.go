// Package inventory is the typed client for the inventory service.
//
// Each remote operation is a concrete method over httpclient.Client:
//
//	inv, err := inventory.NewClient(cfg.Inventory.URL, httpclient.DefaultTimeoutPolicy())
//	if err != nil {
//	    return err // CONFIGURATION_ERROR, fatal at startup
//	}
//	ok, err := inv.IsInStock(ctx, "iphone_15", 2)
package inventory
