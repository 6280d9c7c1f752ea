package topology

import "github.com/edvin/regionfailover/internal/model"

// BindDomain provisions a certificate for domainName scoped to the
// endpoint's region and maps a region-scoped domain-name resource onto the
// endpoint's stage.
//
// Every region reuses the same domain name, so the certificate, domain and
// mapping identities all carry the region.
func BindDomain(domainName, hostedZoneID string, endpoint model.RegionalEndpoint) (model.Certificate, model.DomainBinding) {
	region := endpoint.Region

	cert := model.Certificate{
		Key:              model.Key(region, model.KindCertificate),
		DomainName:       domainName,
		HostedZoneID:     hostedZoneID,
		Region:           region,
		ValidationMethod: model.CertValidationDNS,
	}

	binding := model.DomainBinding{
		Key:         model.Key(region, model.KindDomain),
		MappingKey:  model.Key(region, model.KindDomainMapping),
		DomainName:  domainName,
		Region:      region,
		Certificate: cert.Key,
		Endpoint:    endpoint.Key,
		Stage:       endpoint.Stage,
	}

	return cert, binding
}
