package apidoc

// Metadata is the static description of the service API.
type Metadata struct {
	Title                   string
	Description             string
	Version                 string
	LicenseName             string
	ExternalDocsDescription string
	ExternalDocsURL         string
}

const projectDocsURL = "https://correo2urledu-my.sharepoint.com/:w:/g/personal/eerivasa_correo_url_edu_gt/EbARm799M4xOo4DbKAFv4pABR3V4Lk6OwiXuJnIRus3b9w?e=HCB3vB"

// BuildMetadata returns the API metadata published on the documentation
// endpoint. It has no inputs and always returns the same value.
func BuildMetadata() Metadata {
	return Metadata{
		Title:                   "Order Service",
		Description:             "This is the REST API for Order Service",
		Version:                 "v0.0.1",
		LicenseName:             "Apache 2.0",
		ExternalDocsDescription: "You can refer to the Project documentation",
		ExternalDocsURL:         projectDocsURL,
	}
}

// Override returns a copy of m with the non-empty fields of cfg applied.
func (m Metadata) Override(cfg DocsConfig) Metadata {
	if cfg.Title != "" {
		m.Title = cfg.Title
	}
	if cfg.Version != "" {
		m.Version = cfg.Version
	}
	if cfg.ExternalDocsURL != "" {
		m.ExternalDocsURL = cfg.ExternalDocsURL
	}
	return m
}
