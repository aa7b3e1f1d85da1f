package feed

import (
	"errors"
	"strings"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"
      xmlns:cac="urn:dgpe:names:draft:codice:schema:xsd:CommonAggregateComponents-2"
      xmlns:cbc="urn:dgpe:names:draft:codice:schema:xsd:CommonBasicComponents-2"
      xmlns:cac-place-ext="urn:dgpe:names:draft:codice-place-ext:schema:xsd:CommonAggregateComponents-2"
      xmlns:cbc-place-ext="urn:dgpe:names:draft:codice-place-ext:schema:xsd:CommonBasicComponents-2">
  <title>Plataforma de Contratación - Licitaciones</title>
  <updated>2026-08-01T08:00:00Z</updated>
  <entry>
    <id>https://contratacion.example/licitaciones/1</id>
    <title>Obras de reforma del CEIP San Fernando</title>
    <summary>Reforma integral del colegio en Madrid capital.</summary>
    <updated>2026-08-01T07:30:00Z</updated>
    <link href="https://contratacion.example/licitaciones/1.html"/>
    <cac-place-ext:ContractFolderStatus>
      <cbc:ContractFolderID>EXP-2026-0001</cbc:ContractFolderID>
      <cbc-place-ext:ContractFolderStatusCode>PUB</cbc-place-ext:ContractFolderStatusCode>
      <cac:ProcurementProject>
        <cbc:Name>Reforma CEIP San Fernando</cbc:Name>
        <cac:RequiredCommodityClassification>
          <cbc:ItemClassificationCode>45210000</cbc:ItemClassificationCode>
        </cac:RequiredCommodityClassification>
        <cac:RequiredCommodityClassification>
          <cbc:ItemClassificationCode>45310000</cbc:ItemClassificationCode>
        </cac:RequiredCommodityClassification>
        <cac:BudgetAmount>
          <cbc:TotalAmount currencyID="EUR">300000</cbc:TotalAmount>
        </cac:BudgetAmount>
        <cac:RealizedLocation>
          <cbc:CountrySubentity>Madrid</cbc:CountrySubentity>
          <cbc:CountrySubentityCode>ES300</cbc:CountrySubentityCode>
        </cac:RealizedLocation>
      </cac:ProcurementProject>
      <cac:TenderingProcess>
        <cac:TenderSubmissionDeadlinePeriod>
          <cbc:EndDate>2026-09-18</cbc:EndDate>
          <cbc:EndTime>14:00:00</cbc:EndTime>
        </cac:TenderSubmissionDeadlinePeriod>
      </cac:TenderingProcess>
      <cac:LocatedContractingParty>
        <cac:Party>
          <cac:PartyName>
            <cbc:Name>Ayuntamiento de Madrid</cbc:Name>
          </cac:PartyName>
        </cac:Party>
      </cac:LocatedContractingParty>
    </cac-place-ext:ContractFolderStatus>
  </entry>
  <entry>
    <id>https://contratacion.example/licitaciones/2</id>
    <title>Servicios de asesoría jurídica</title>
    <summary>Asesoramiento legal para el organismo.</summary>
    <updated>2026-08-01T06:00:00Z</updated>
    <link href="https://contratacion.example/licitaciones/2.html"/>
    <cac-place-ext:ContractFolderStatus>
      <cbc:ContractFolderID>EXP-2026-0002</cbc:ContractFolderID>
      <cac:ProcurementProject>
        <cac:RequiredCommodityClassification>
          <cbc:ItemClassificationCode>79000000</cbc:ItemClassificationCode>
        </cac:RequiredCommodityClassification>
      </cac:ProcurementProject>
    </cac-place-ext:ContractFolderStatus>
  </entry>
</feed>`

func parseSample(t *testing.T, maxEntries int) []RawEntry {
	t.Helper()
	entries, err := ParseFeed(strings.NewReader(sampleFeed), maxEntries)
	if err != nil {
		t.Fatalf("ParseFeed error: %v", err)
	}
	return entries
}

func TestParseFeed(t *testing.T) {
	entries := parseSample(t, 0)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	e := entries[0]
	if got := e.Value("title"); got != "Obras de reforma del CEIP San Fernando" {
		t.Fatalf("title = %q", got)
	}
	if got := e.Value("ContractFolderStatus", "ContractFolderID"); got != "EXP-2026-0001" {
		t.Fatalf("folder id = %q", got)
	}
}

func TestParseFeedAttributeMerging(t *testing.T) {
	e := parseSample(t, 0)[0]

	// link target is an attribute, currency is an attribute next to text
	if got := e.Value("link", "href"); got != "https://contratacion.example/licitaciones/1.html" {
		t.Fatalf("link href = %q", got)
	}
	amount := e.First("ContractFolderStatus", "ProcurementProject", "BudgetAmount", "TotalAmount")
	if amount == nil {
		t.Fatalf("missing budget amount")
	}
	if got := amount.Value("currencyID"); got != "EUR" {
		t.Fatalf("currencyID = %q", got)
	}
	if amount.Text != "300000" {
		t.Fatalf("amount text = %q", amount.Text)
	}
}

func TestParseFeedRepeatedElements(t *testing.T) {
	e := parseSample(t, 0)[0]
	project := e.First("ContractFolderStatus", "ProcurementProject")
	classifications := project.All("RequiredCommodityClassification")
	if len(classifications) != 2 {
		t.Fatalf("expected 2 classifications, got %d", len(classifications))
	}
	// First() must take the first occurrence.
	if got := project.Value("RequiredCommodityClassification", "ItemClassificationCode"); got != "45210000" {
		t.Fatalf("first classification = %q", got)
	}
}

func TestParseFeedCap(t *testing.T) {
	entries := parseSample(t, 1)
	if len(entries) != 1 {
		t.Fatalf("expected cap to 1 entry, got %d", len(entries))
	}
	if got := entries[0].Value("ContractFolderStatus", "ContractFolderID"); got != "EXP-2026-0001" {
		t.Fatalf("cap must keep leading entries, got %q", got)
	}
}

func TestParseFeedNoEntries(t *testing.T) {
	doc := `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"><title>empty</title></feed>`
	entries, err := ParseFeed(strings.NewReader(doc), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty slice, got %d entries", len(entries))
	}
}

func TestParseFeedMalformed(t *testing.T) {
	_, err := ParseFeed(strings.NewReader(`<feed><entry>`), 10)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}
