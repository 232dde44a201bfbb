package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"pdf-rag-be/config"
	"pdf-rag-be/database"
	"pdf-rag-be/service"
	"pdf-rag-be/types"
	"pdf-rag-be/utils"
)

// vectorizeCmd represents the vectorize command. It ingests local PDF files
// straight into the vector index, bypassing object storage and the document
// registry. Useful for seeding an index from a directory of PDFs.
var vectorizeCmd = &cobra.Command{
	Use:   "vectorize",
	Short: "Vectorize local PDF files into the index",
	Long:  `Extracts, chunks and embeds local PDF files directly into the vector index`,
	Run: func(cmd *cobra.Command, args []string) {
		files, _ := cmd.Flags().GetStringSlice("file")
		reinit, _ := cmd.Flags().GetBool("reinit")
		if len(files) == 0 {
			log.Fatal("No files provided, use --file")
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		weaviateDb, err := database.NewWeaviateStore(cfg.Weaviate.Host, cfg.WeaviateAPIKey)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		if reinit {
			if err := weaviateDb.ReInit(); err != nil {
				log.Fatalf("Failed to reinit vector index: %v", err)
			}
			log.Println("Vector index dropped and recreated")
		}

		embedder := service.NewEmbeddingService(
			cfg.Embedding.BaseURL,
			cfg.OpenAIAPIKey,
			cfg.Embedding.Model,
			cfg.Embedding.Dimension,
		)
		pdfService := service.NewPDFService()
		ingestService := service.NewIngestService(embedder, weaviateDb)

		ctx := context.Background()
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Fatalf("Failed to read %s: %v", path, err)
			}
			filename := utils.SanitizeFilename(filepath.Base(path))

			pages, err := pdfService.ExtractPages(data, filename)
			if err != nil {
				log.Fatalf("Failed to extract %s: %v", path, err)
			}

			meta := types.DocumentMeta{
				Filename:      filename,
				PageCount:     len(pages),
				ProcessedDate: time.Now().Format(time.RFC3339),
			}
			result, err := ingestService.Ingest(ctx, pages, meta)
			if err != nil {
				log.Fatalf("Failed to vectorize %s: %v", path, err)
			}
			log.Printf("Vectorized %s: %d pages, %d vectors", filename, len(pages), result.VectorsCreated)
		}
	},
}

func init() {
	rootCmd.AddCommand(vectorizeCmd)
	vectorizeCmd.Flags().StringSliceP("file", "f", nil, "PDF file to vectorize (repeatable)")
	vectorizeCmd.Flags().Bool("reinit", false, "drop and recreate the vector index first")
}
