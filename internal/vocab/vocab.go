// Package vocab defines the RDF namespaces, prefixes, and XSD datatype
// constants shared by the field registry and the shape exporter.
package vocab

import "strings"

// Namespace URIs for the vocabularies used in generated shapes.
const (
	// NamespaceFF is the Foerderfunke vocabulary for data fields,
	// answer options, and requirement profiles.
	NamespaceFF = "https://foerderfunke.org/default#"

	// NamespaceSH is the W3C Shapes Constraint Language namespace.
	NamespaceSH = "http://www.w3.org/ns/shacl#"

	// NamespaceRDF is the standard RDF namespace.
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// NamespaceRDFS is the RDF Schema namespace.
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// NamespaceXSD is the XML Schema namespace for datatypes.
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"

	// NamespaceSchema is the schema.org namespace.
	NamespaceSchema = "http://schema.org/"
)

// Namespace prefixes for compact URI representation.
const (
	PrefixFF     = "ff:"
	PrefixSH     = "sh:"
	PrefixRDF    = "rdf:"
	PrefixRDFS   = "rdfs:"
	PrefixXSD    = "xsd:"
	PrefixSchema = "schema:"
)

// XSD datatypes in prefixed form. The registry's scalar constraint
// datatypes are a subset of these.
const (
	XSDString  = "xsd:string"
	XSDBoolean = "xsd:boolean"
	XSDInteger = "xsd:integer"
	XSDDate    = "xsd:date"
)

// FF vocabulary classes and properties used when assembling shapes.
const (
	FFClassRequirementProfile    = "ff:RequirementProfile"
	FFClassEligibilityConstraint = "ff:EligibilityConstraint"
	FFClassCitizen               = "ff:Citizen"
	FFClassDataField             = "ff:DataField"
	FFClassAnswerOption          = "ff:AnswerOption"
	FFPropHasMainPersonShape     = "ff:hasMainPersonShape"
)

// SHACL terms emitted by the Turtle serializer.
const (
	SHClassNodeShape     = "sh:NodeShape"
	SHPropProperty       = "sh:property"
	SHPropPath           = "sh:path"
	SHPropDatatype       = "sh:datatype"
	SHPropIn             = "sh:in"
	SHPropMinCount       = "sh:minCount"
	SHPropMaxCount       = "sh:maxCount"
	SHPropDescription    = "sh:description"
	SHPropTargetClass    = "sh:targetClass"
	SHPropTargetSubjects = "sh:targetSubjectsOf"
	SHPropTargetObjects  = "sh:targetObjectsOf"
)

// PrefixBinding pairs a prefix with its namespace.
type PrefixBinding struct {
	Prefix    string
	Namespace string
}

// prefixTable maps each known prefix to its namespace, in the order
// prefix declarations are emitted.
var prefixTable = []PrefixBinding{
	{PrefixFF, NamespaceFF},
	{PrefixSH, NamespaceSH},
	{PrefixRDF, NamespaceRDF},
	{PrefixRDFS, NamespaceRDFS},
	{PrefixXSD, NamespaceXSD},
	{PrefixSchema, NamespaceSchema},
}

// Prefixes returns the known prefix bindings in declaration order.
func Prefixes() []PrefixBinding {
	out := make([]PrefixBinding, len(prefixTable))
	copy(out, prefixTable)
	return out
}

// Expand converts a prefixed name such as "ff:geburtsdatum" to a full IRI.
// Returns the input unchanged and false when the prefix is unknown or the
// name is not in prefixed form.
func Expand(name string) (string, bool) {
	idx := strings.Index(name, ":")
	if idx < 0 {
		return name, false
	}
	prefix := name[:idx+1]
	for _, entry := range prefixTable {
		if entry.Prefix == prefix {
			return entry.Namespace + name[idx+1:], true
		}
	}
	return name, false
}

// Compact converts a full IRI to prefixed form where a known namespace
// matches. Returns the input unchanged and false otherwise.
func Compact(iri string) (string, bool) {
	for _, entry := range prefixTable {
		if strings.HasPrefix(iri, entry.Namespace) {
			return entry.Prefix + iri[len(entry.Namespace):], true
		}
	}
	return iri, false
}

// LocalName strips a known prefix or namespace from a term, returning the
// bare local part. "ff:geburtsdatum" and the full IRI both yield
// "geburtsdatum"; unprefixed input is returned unchanged.
func LocalName(term string) string {
	if compact, ok := Compact(term); ok {
		term = compact
	}
	if idx := strings.Index(term, ":"); idx >= 0 {
		return term[idx+1:]
	}
	return term
}
