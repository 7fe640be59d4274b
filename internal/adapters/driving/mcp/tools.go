package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docdex/docdex-cli/internal/core/domain"
)

// DefaultSearchLimit is used when the caller does not supply one.
const DefaultSearchLimit = 10

// SearchInput is the input schema for the search_docs tool.
type SearchInput struct {
	Query  string `json:"query" jsonschema:"the search query to find documentation"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Offset int    `json:"offset,omitempty" jsonschema:"number of ranked results to skip"`
}

// SearchOutput is the output schema for the search_docs tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID  string   `json:"document_id"`
	SectionID   string   `json:"section_id"`
	ChunkID     string   `json:"chunk_id"`
	Title       string   `json:"title"`
	HeadingPath []string `json:"heading_path"`
	Snippet     string   `json:"snippet"`
	Score       float64  `json:"score"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document ID, e.g. components/button"`
}

// GetDocumentOutput is the output schema for the get_document tool.
type GetDocumentOutput struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Sections    []SectionOutput `json:"sections"`
}

// SectionOutput represents one section of a document.
type SectionOutput struct {
	ID          string   `json:"id"`
	HeadingPath []string `json:"heading_path"`
	Content     string   `json:"content"`
}

// GetSectionInput is the input schema for the get_section tool.
type GetSectionInput struct {
	SectionID string `json:"section_id" jsonschema:"the section ID, e.g. components/button#1-props"`
}

// GetSectionOutput is the output schema for the get_section tool.
type GetSectionOutput struct {
	ID          string   `json:"id"`
	DocumentID  string   `json:"document_id"`
	HeadingPath []string `json:"heading_path"`
	Content     string   `json:"content"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Category string `json:"category,omitempty" jsonschema:"optional category filter (case-insensitive)"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentInfoOutput `json:"documents"`
	Count     int                  `json:"count"`
}

// DocumentInfoOutput summarises one document.
type DocumentInfoOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// ListCategoriesInput is the (empty) input schema for list_categories.
type ListCategoriesInput struct{}

// ListCategoriesOutput is the output schema for the list_categories tool.
type ListCategoriesOutput struct {
	Categories []string `json:"categories"`
}

// IngestInput is the input schema for the ingest_docs tool.
type IngestInput struct {
	Path string `json:"path" jsonschema:"path to the documentation corpus root"`
}

// IngestOutput is the output schema for the ingest_docs tool.
type IngestOutput struct {
	RunID              string `json:"run_id"`
	DocumentsProcessed int    `json:"documents_processed"`
	DocumentsFailed    int    `json:"documents_failed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Search the ingested documentation and return ranked excerpts",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Fetch a full document with its sections by document ID",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_section",
		Description: "Fetch a single document section by section ID",
	}, s.handleGetSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List ingested documents, optionally filtered by category",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the documentation categories",
	}, s.handleListCategories)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest_docs",
			Description: "Ingest or re-ingest a documentation corpus from a directory",
		}, s.handleIngest)
	}
}

// handleSearch handles the search_docs tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = s.ports.DefaultLimit
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	opts := domain.SearchOptions{Limit: limit, Offset: input.Offset}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID:  results[i].DocumentID,
			SectionID:   results[i].SectionID,
			ChunkID:     results[i].ChunkID,
			Title:       results[i].Title,
			HeadingPath: results[i].HeadingPath,
			Snippet:     results[i].Snippet,
			Score:       results[i].Score,
		}
	}

	return nil, output, nil
}

// handleGetDocument handles the get_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, GetDocumentOutput, error) {
	doc, err := s.ports.Document.Get(ctx, input.DocumentID)
	if err != nil {
		return nil, GetDocumentOutput{}, err
	}

	output := GetDocumentOutput{
		ID:          doc.Document.ID,
		Title:       doc.Document.Title,
		Category:    doc.Document.Category,
		Description: doc.Document.Description,
		Sections:    make([]SectionOutput, len(doc.Sections)),
	}
	for i := range doc.Sections {
		output.Sections[i] = SectionOutput{
			ID:          doc.Sections[i].ID,
			HeadingPath: doc.Sections[i].HeadingPath,
			Content:     doc.Sections[i].Content,
		}
	}

	return nil, output, nil
}

// handleGetSection handles the get_section tool invocation.
func (s *Server) handleGetSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetSectionInput,
) (*mcp.CallToolResult, GetSectionOutput, error) {
	section, err := s.ports.Document.GetSection(ctx, input.SectionID)
	if err != nil {
		return nil, GetSectionOutput{}, err
	}

	return nil, GetSectionOutput{
		ID:          section.ID,
		DocumentID:  section.DocumentID,
		HeadingPath: section.HeadingPath,
		Content:     section.Content,
	}, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Document.List(ctx, input.Category)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentInfoOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = DocumentInfoOutput{
			ID:          docs[i].ID,
			Title:       docs[i].Title,
			Category:    docs[i].Category,
			Description: docs[i].Description,
		}
	}

	return nil, output, nil
}

// handleListCategories handles the list_categories tool invocation.
func (s *Server) handleListCategories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCategoriesInput,
) (*mcp.CallToolResult, ListCategoriesOutput, error) {
	categories, err := s.ports.Document.Categories(ctx)
	if err != nil {
		return nil, ListCategoriesOutput{}, err
	}

	return nil, ListCategoriesOutput{Categories: categories}, nil
}

// handleIngest handles the ingest_docs tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	report, err := s.ports.Ingest.IngestCorpus(ctx, input.Path)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		RunID:              report.RunID,
		DocumentsProcessed: report.DocumentsProcessed,
		DocumentsFailed:    report.DocumentsFailed,
	}, nil
}
