// Package integration contains the Integration bounded context.
// This context manages connected online stores and everything that flows in from them.
//
// Key concepts:
//   - Store: a connected WooCommerce/Shopify/Magento/PrestaShop shop owned by one user
//   - SyncLog: append-only audit trail written by every fulfillment step
//   - AIConfig: per-store assistant settings (one row per store)
//   - CatalogFeed: port for pulling products and orders from a platform
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the application and infrastructure layers
package integration
