package submission

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"

	dErrors "lingo/pkg/domain-errors"
)

// EncodeMultipart writes the payload as the backend's multipart form: scalar
// fields as plain parts, list fields as JSON-encoded parts, and any uploaded
// documents as binary parts. files is keyed by the file name recorded on the
// draft; names the payload references but files lacks are skipped, matching
// the backend's treatment of metadata-only certificates.
func EncodeMultipart(p *Payload, files map[string][]byte) (body *bytes.Buffer, contentType string, err error) {
	body = &bytes.Buffer{}
	w := multipart.NewWriter(body)

	scalars := map[string]string{
		"first_name":         p.FirstName,
		"last_name":          p.LastName,
		"email":              p.Email,
		"phone":              p.Phone,
		"address_line1":      p.AddressLine1,
		"address_line2":      p.AddressLine2,
		"city":               p.City,
		"region_code":        p.RegionCode,
		"postal_code":        p.PostalCode,
		"formatted_address":  p.Formatted,
		"latitude":           strconv.FormatFloat(p.Latitude, 'f', -1, 64),
		"longitude":          strconv.FormatFloat(p.Longitude, 'f', -1, 64),
		"w9_entry_method":    p.W9EntryMethod,
		"agreement_accepted": strconv.FormatBool(p.AgreementAccepted),
		"privacy_accepted":   strconv.FormatBool(p.PrivacyAccepted),
	}
	for field, value := range scalars {
		if value == "" {
			continue
		}
		if err := w.WriteField(field, value); err != nil {
			return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to write form field")
		}
	}

	jsonFields := map[string]any{
		"languages":             p.Languages,
		"service_types":         p.ServiceTypeIDs,
		"service_rates":         p.ServiceRates,
		"certificates_metadata": p.CertificatesMetadata,
	}
	for field, value := range jsonFields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode "+field)
		}
		if err := w.WriteField(field, string(encoded)); err != nil {
			return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to write form field")
		}
	}

	if p.W9Data != nil {
		encoded, err := json.Marshal(p.W9Data)
		if err != nil {
			return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode w9_data")
		}
		if err := w.WriteField("w9_data", string(encoded)); err != nil {
			return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to write form field")
		}
	}
	if p.W9FileName != "" {
		if content, ok := files[p.W9FileName]; ok {
			if err := writeFilePart(w, "w9_file", p.W9FileName, content); err != nil {
				return nil, "", err
			}
		}
	}

	for i, cert := range p.CertificatesMetadata {
		if cert.FileName == "" {
			continue
		}
		content, ok := files[cert.FileName]
		if !ok {
			continue
		}
		field := fmt.Sprintf("certificate_file_%d", i)
		if err := writeFilePart(w, field, cert.FileName, content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to finalize multipart body")
	}
	return body, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, field, name string, content []byte) error {
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create file part")
	}
	if _, err := part.Write(content); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write file part")
	}
	return nil
}
