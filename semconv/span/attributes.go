package span

// LLM token-usage attributes (OpenInference llm.token_count.*).
const (
	// LLMTokenCountTotal is the total number of tokens (prompt + completion)
	// consumed by an LLM-kind span.
	// Type: int64
	LLMTokenCountTotal = "llm.token_count.total"

	// LLMTokenCountPrompt is the number of prompt tokens.
	// Type: int64
	LLMTokenCountPrompt = "llm.token_count.prompt"

	// LLMTokenCountCompletion is the number of completion tokens.
	// Type: int64
	LLMTokenCountCompletion = "llm.token_count.completion"
)

// Retrieval attributes (OpenInference retrieval.*).
const (
	// RetrievalDocuments is the list of documents retrieved by a
	// RETRIEVER-kind span. Its length is the span's document count.
	// Type: []any
	RetrievalDocuments = "retrieval.documents"
)
