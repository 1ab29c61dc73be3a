package domain

import "fmt"

// ShopURL builds the full browser URL for a shop's storefront. Shop names
// double as subdomains of the portal host, an implicit convention inherited
// from the product: "groceries" on localhost:5173 lives at
// http://groceries.localhost:5173.
func ShopURL(shopName, host string, port int) string {
	return fmt.Sprintf("http://%s.%s:%d", shopName, host, port)
}
