package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sparekart/sparekart-api/initializers"
	"github.com/sparekart/sparekart-api/models"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func bucketName() string {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		bucket = "sparekart"
	}
	return bucket
}

func getS3Client() (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Product handlers
func CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

func UpdateProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product", err)
		}
		return
	}

	var updates models.Product
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Model(&product).Updates(map[string]any{
		"name":                updates.Name,
		"brand":               updates.Brand,
		"description":         updates.Description,
		"category":            updates.Category,
		"material":            updates.Material,
		"price":               updates.Price,
		"discount_percentage": updates.DiscountPercentage,
		"compatibility":       updates.Compatibility,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct removes the product row and its images from object storage.
// Image rows go with the product via the cascade constraint.
func DeleteProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var images []models.ProductImage
	if err := initializers.DB.Where("product_id = ?", productId).Find(&images).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product images", err)
		return
	}

	if len(images) > 0 {
		client, err := getS3Client()
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
			return
		}
		for _, image := range images {
			if image.ObjectKey == "" {
				continue
			}
			_, delErr := client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
				Bucket: aws.String(bucketName()),
				Key:    aws.String(image.ObjectKey),
			})
			if delErr != nil {
				log.Printf("Error deleting object %s: %v", image.ObjectKey, delErr)
			}
		}
	}

	if result := initializers.DB.Delete(&models.Product{}, productId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

// UpsertProductSizes creates or updates the per-size price and stock rows for
// a product.
func UpsertProductSizes(ctx *gin.Context) {
	var body struct {
		ProductID int `json:"productId" binding:"required"`
		Sizes     []struct {
			Size  string  `json:"size" binding:"required"`
			Price float64 `json:"price" binding:"required"`
			Stock int     `json:"stock"`
		} `json:"sizes" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// Validate product exists
	var product models.Product
	if err := initializers.DB.First(&product, body.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	for _, entry := range body.Sizes {
		if !models.IsValidSize(entry.Size) {
			respondWithError(ctx, http.StatusBadRequest, "Invalid size "+entry.Size, nil)
			return
		}
		if entry.Stock < 0 {
			respondWithError(ctx, http.StatusBadRequest, "Stock cannot be negative", nil)
			return
		}
	}

	for _, entry := range body.Sizes {
		var existing models.ProductSize
		err := initializers.DB.
			Where("product_id = ? AND size = ?", body.ProductID, entry.Size).
			First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			size := models.ProductSize{
				ProductID: body.ProductID,
				Size:      entry.Size,
				Price:     entry.Price,
				Stock:     entry.Stock,
			}
			if err := initializers.DB.Create(&size).Error; err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to create product size", err)
				return
			}
			continue
		}
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product size", err)
			return
		}

		existing.Price = entry.Price
		existing.Stock = entry.Stock
		if err := initializers.DB.Save(&existing).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update product size", err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product sizes saved successfully"})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func UploadProductImages(ctx *gin.Context) {
	// Get multipart form
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	// Get and validate productId
	productIdStr := ctx.PostForm("productId")
	if productIdStr == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing productId", nil)
		return
	}

	productId, err := strconv.Atoi(productIdStr)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid productId", err)
		return
	}

	// Validate product exists
	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	// Get AWS uploader
	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	var uploadedUrls []string
	var failedUploads []string

	// Upload files and save to database
	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Printf("Error opening file %s: %v", file.Filename, openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		// Generate a unique key to prevent overwrites
		uniqueKey := fmt.Sprintf("%d-%s-%s", productId, uuid.NewString(), file.Filename)

		result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(bucketName()),
			Key:         aws.String(uniqueKey),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		f.Close() // Close file immediately after use

		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploadedUrls = append(uploadedUrls, result.Location)

		// Create a ProductImage record
		productImage := models.ProductImage{
			Url:       result.Location,
			ObjectKey: uniqueKey,
			ProductID: productId,
		}

		if err := initializers.DB.Create(&productImage).Error; err != nil {
			log.Printf("Error saving image to database: %v", err)
			// We've already uploaded the file, so we'll just log this error
		}
	}

	response := gin.H{
		"message": "Files processed",
		"urls":    uploadedUrls,
	}

	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteProductImage removes a single image from object storage and the
// database.
func DeleteProductImage(ctx *gin.Context) {
	imageId, err := strconv.Atoi(ctx.Param("imageId"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid image ID", err)
		return
	}

	var image models.ProductImage
	if err := initializers.DB.First(&image, imageId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Image not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch image", err)
		}
		return
	}

	if image.ObjectKey != "" {
		client, err := getS3Client()
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
			return
		}
		if _, err := client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
			Bucket: aws.String(bucketName()),
			Key:    aws.String(image.ObjectKey),
		}); err != nil {
			log.Printf("Error deleting object %s: %v", image.ObjectKey, err)
		}
	}

	if err := initializers.DB.Delete(&image).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete image", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully."})
}

func GetProducts(ctx *gin.Context) {
	var products []models.Product

	// Add pagination
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))
	offset := (page - 1) * limit

	query := initializers.DB.Preload("Images").Preload("Sizes")

	// Add search by name if provided
	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	// Execute the query with pagination
	result := query.Limit(limit).Offset(offset).Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	// Get total count for pagination
	var count int64
	initializers.DB.Model(&models.Product{}).Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	result := initializers.DB.Preload("Sizes").Preload("Images").First(&product, productId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}
