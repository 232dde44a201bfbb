package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"pdf-rag-be/config"
	"pdf-rag-be/database"
	"pdf-rag-be/handler"
	"pdf-rag-be/repository"
	"pdf-rag-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the PDF question answering server",
	Long:  `Starts the HTTP server serving upload, vectorization and ask endpoints`,
	Run: func(cmd *cobra.Command, args []string) {

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		mongoDb := mongoClient.Database(cfg.Mongo.Database)
		docRepo := repository.NewDocumentRepo(mongoDb)

		weaviateDb, err := database.NewWeaviateStore(cfg.Weaviate.Host, cfg.WeaviateAPIKey)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		storage, err := service.NewMinioStorage(
			cfg.Storage.Endpoint,
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.Storage.Bucket,
			cfg.Storage.UseSSL,
		)
		if err != nil {
			log.Fatalf("Failed to create object storage client: %v", err)
		}

		embedder := service.NewEmbeddingService(
			cfg.Embedding.BaseURL,
			cfg.OpenAIAPIKey,
			cfg.Embedding.Model,
			cfg.Embedding.Dimension,
		)

		aiService, err := newAIService(cfg)
		if err != nil {
			log.Fatalf("Failed to create AI service: %v", err)
		}

		pdfService := service.NewPDFService()
		ingestService := service.NewIngestService(embedder, weaviateDb)
		ragService := service.NewRAGService(embedder, weaviateDb, aiService)
		wsService := service.NewWebSocketService(ragService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		uploadHandler := handler.NewUploadHandler(storage, docRepo)
		documentHandler := handler.NewDocumentHandler(docRepo)
		vectorizeHandler := handler.NewVectorizeHandler(storage, pdfService, ingestService, docRepo)
		askHandler := handler.NewAskHandler(ragService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "PDF RAG backend is running"})
		})

		router.POST("/uploadpdf/", uploadHandler.UploadDocumentHandler)
		router.GET("/extract/:filename", vectorizeHandler.ExtractHandler)
		router.POST("/vectorize/:filename", vectorizeHandler.VectorizeHandler)

		api := router.Group("/api")
		{
			api.POST("/ask", askHandler.AskHandler)
			api.GET("/files", documentHandler.ListFilesHandler)
			api.DELETE("/files/:filename", documentHandler.DeleteFileHandler)
			api.GET("/statistics", documentHandler.StatisticsHandler)
		}

		router.GET("/ws/ask", func(c *gin.Context) {
			wsService.HandleAsk(c.Writer, c.Request)
		})

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

// newAIService picks the generation backend from config. "openai" also covers
// any OpenAI-compatible local server through ai.base_url.
func newAIService(cfg *config.Config) (service.AIService, error) {
	if cfg.AI.Provider == "gemini" {
		return service.NewGeminiService(cfg.GeminiAPIKeys, cfg.AI.Model, cfg.AI.MaxTokens, cfg.AI.Temperature)
	}
	return service.NewOpenAIService(cfg.AI.BaseURL, cfg.OpenAIAPIKey, cfg.AI.Model, cfg.AI.MaxTokens, cfg.AI.Temperature), nil
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
