package tracing

// Span attribute keys used across the generation pipeline.
const (
	// Generation attributes
	AttrBenefit      = "generation.benefit"
	AttrLegalTextLen = "generation.legal_text_length"
	AttrModel        = "generation.model"
	AttrCacheHit     = "generation.cache_hit"
	AttrNewFields    = "generation.new_fields"

	// Registry attributes
	AttrFieldName  = "registry.field"
	AttrFieldCount = "registry.field_count"

	// Store attributes
	AttrShapeID   = "store.shape_id"
	AttrShapeName = "store.shape_name"

	// Ingest attributes
	AttrDocumentPath = "ingest.document_path"
	AttrSegmentCount = "ingest.segment_count"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixGenerate = "generate."
	SpanPrefixStore    = "store."
	SpanPrefixIngest   = "ingest."
	SpanPrefixRegistry = "registry."
)

// Event names for span events.
const (
	EventPromptBuilt      = "prompt.built"
	EventAssistantCalled  = "assistant.called"
	EventTurtleExtracted  = "turtle.extracted"
	EventShapeSaved       = "shape.saved"
	EventCatalogueReload  = "catalogue.reloaded"
	EventErrorOccurred    = "error.occurred"
	EventSuggestionsFound = "suggestions.found"
)
