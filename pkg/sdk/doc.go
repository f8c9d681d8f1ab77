// Package productindex embeds the product document index in a Go program:
// resolve the corpus, sync a manufacturer/product tree and ask filtered questions.
//
//	client, _ := productindex.New(productindex.WithAPIKey(os.Getenv("VECTARA_API_KEY")))
//	_, _ = client.Open(ctx, productindex.ModeRecreate)
//	_, _ = client.Sync(ctx, "./data")
//	ans, _ := client.Query(ctx, "Is this device MRI conditional?",
//	    productindex.WithManufacturer("Medtronic"),
//	)
package productindex
