package service

import (
	"github.com/noah-isme/fileflow-portal-api/internal/models"
	"github.com/noah-isme/fileflow-portal-api/pkg/config"
	"github.com/noah-isme/fileflow-portal-api/pkg/storage"
)

type categoryEntry struct {
	info        models.CategoryInfo
	credentials storage.Credentials
	configured  bool
}

// CategoryRoute is everything the relay needs to deliver one category.
type CategoryRoute struct {
	Category    models.Category
	Extensions  []string
	Credentials storage.Credentials
}

// CategoryRegistry maps each category id to its accepted extensions and the
// remote login it is delivered with. It is built once and never mutated.
type CategoryRegistry struct {
	entries map[string]categoryEntry
	order   []models.Category
}

// NewCategoryRegistry binds the catalogue to the configured accounts. Accounts
// for ids outside the catalogue are ignored.
func NewCategoryRegistry(accounts map[string]config.FTPCredentials) *CategoryRegistry {
	catalogue := models.Catalogue()
	reg := &CategoryRegistry{
		entries: make(map[string]categoryEntry, len(catalogue)),
		order:   make([]models.Category, 0, len(catalogue)),
	}
	for _, info := range catalogue {
		entry := categoryEntry{info: info}
		if account, ok := accounts[string(info.ID)]; ok && account.User != "" {
			entry.credentials = storage.Credentials{User: account.User, Password: account.Password}
			entry.configured = true
		}
		reg.entries[string(info.ID)] = entry
		reg.order = append(reg.order, info.ID)
	}
	return reg
}

// AllowedExtensions returns the ordered extensions for category.
func (r *CategoryRegistry) AllowedExtensions(category string) ([]string, bool) {
	entry, ok := r.entries[category]
	if !ok {
		return nil, false
	}
	return append([]string(nil), entry.info.Extensions...), true
}

// CredentialsFor returns the login for category. A category without a
// configured account is reported as absent.
func (r *CategoryRegistry) CredentialsFor(category string) (storage.Credentials, bool) {
	entry, ok := r.entries[category]
	if !ok || !entry.configured {
		return storage.Credentials{}, false
	}
	return entry.credentials, true
}

// Route resolves extensions and credentials together.
func (r *CategoryRegistry) Route(category string) (CategoryRoute, bool) {
	entry, ok := r.entries[category]
	if !ok || !entry.configured {
		return CategoryRoute{}, false
	}
	return CategoryRoute{
		Category:    entry.info.ID,
		Extensions:  append([]string(nil), entry.info.Extensions...),
		Credentials: entry.credentials,
	}, true
}

// Info returns the display entry for category.
func (r *CategoryRegistry) Info(category string) (models.CategoryInfo, bool) {
	entry, ok := r.entries[category]
	return entry.info, ok
}

// List returns the catalogue in display order.
func (r *CategoryRegistry) List() []models.CategoryInfo {
	out := make([]models.CategoryInfo, 0, len(r.order))
	for _, id := range r.order {
		info := r.entries[string(id)].info
		info.Extensions = append([]string(nil), info.Extensions...)
		out = append(out, info)
	}
	return out
}

// Unconfigured lists categories with no remote account, for startup warnings.
func (r *CategoryRegistry) Unconfigured() []string {
	var missing []string
	for _, id := range r.order {
		if !r.entries[string(id)].configured {
			missing = append(missing, string(id))
		}
	}
	return missing
}
