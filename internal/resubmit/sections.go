package resubmit

// fieldSections rolls individual fields up to the section identifier admins
// may reject them under. Declared as data so policy review never requires
// reading control flow.
var fieldSections = map[string]string{
	// Street address block.
	"address_line1":       "address",
	"address_line2":       "address",
	"address_city":        "address",
	"address_region_code": "address",
	"address_postal_code": "address",

	// W-9 address block.
	"w9_street": "w9_address",
	"w9_city":   "w9_address",
	"w9_state":  "w9_address",
	"w9_zip":    "w9_address",

	// Tax identification.
	"w9_ssn": "w9_tax_id",
	"w9_ein": "w9_tax_id",

	// W-9 identity fields.
	"w9_legal_name":     "w9_identity",
	"w9_business_name":  "w9_identity",
	"w9_classification": "w9_identity",

	// Personal details.
	"first_name": "personal",
	"last_name":  "personal",
	"email":      "personal",
	"phone":      "personal",
}

// sectionSteps maps section and standalone field identifiers to the wizard
// step that edits them, by step name.
var sectionSteps = map[string]string{
	"personal":      "personal",
	"address":       "address",
	"languages":     "languages",
	"certificates":  "certificates",
	"service_types": "service_types",
	"service_rates": "service_types",
	"w9_identity":   "tax_form",
	"w9_tax_id":     "tax_form",
	"w9_address":    "tax_form",
	"w9_form":       "tax_form",
}

// stepOrder fixes the canonical walk order for reentry listings.
var stepOrder = []string{
	"personal",
	"address",
	"languages",
	"certificates",
	"service_types",
	"tax_form",
	"review",
}
