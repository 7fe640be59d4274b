package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var documentCategory string

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Inspect ingested documents",
	Long:  `List, view, or print the raw content of ingested documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document with its section outline",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print a document's raw markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List document categories",
	Args:  cobra.NoArgs,
	RunE:  runDocumentCategories,
}

func init() {
	documentListCmd.Flags().StringVarP(&documentCategory, "category", "c", "", "filter by category (substring match)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentCategoriesCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context(), documentCategory)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title:    %s\n", docs[i].Title)
		if docs[i].Category != "" {
			cmd.Printf("    Category: %s\n", docs[i].Category)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]

	doc, err := documentService.Get(cmd.Context(), docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.Document.ID)
	cmd.Printf("  Title:     %s\n", doc.Document.Title)
	cmd.Printf("  Category:  %s\n", doc.Document.Category)
	cmd.Printf("  Source:    %s\n", doc.Document.SourcePath)
	if doc.Document.Description != "" {
		cmd.Printf("  About:     %s\n", doc.Document.Description)
	}
	cmd.Printf("  Ingested:  %s\n", doc.Document.IngestedAt.Format("2006-01-02 15:04:05"))

	if len(doc.Sections) > 0 {
		cmd.Println("\n  Sections:")
		for i := range doc.Sections {
			heading := strings.Join(doc.Sections[i].HeadingPath, " > ")
			if heading == "" {
				heading = "(preamble)"
			}
			cmd.Printf("    %s  %s\n", doc.Sections[i].ID, heading)
		}
	}

	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(doc.Document.RawContent)
	return nil
}

func runDocumentCategories(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	categories, err := documentService.Categories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if len(categories) == 0 {
		cmd.Println("No categories found.")
		return nil
	}

	for _, category := range categories {
		cmd.Printf("  %s\n", category)
	}
	return nil
}
