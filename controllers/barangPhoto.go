package controllers

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kasir-backend/models"
	"kasir-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
)

const (
	maxPhotoSize      = 5 * 1024 * 1024
	compressThreshold = 100 * 1024
	photoDir          = "./uploads/barang"
)

// saveBarangPhoto сохраняет фото товара на диск; большие файлы пережимаются
// до ширины 800px в JPEG. Возвращает имя сохранённого файла.
func saveBarangPhoto(c *gin.Context, file *multipart.FileHeader, kode string) (string, error) {
	if file.Size > maxPhotoSize {
		return "", fmt.Errorf("file size exceeds the 5MB limit")
	}

	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	if fileExt != ".jpg" && fileExt != ".jpeg" && fileExt != ".png" {
		return "", fmt.Errorf("unsupported file format: %s", fileExt)
	}

	if _, err := os.Stat(photoDir); os.IsNotExist(err) {
		if err := os.MkdirAll(photoDir, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create photo directory: %v", err)
		}
	}

	filename := fmt.Sprintf("%s_%d%s", kode, time.Now().Unix(), fileExt)
	fullPath := filepath.Join(photoDir, filename)

	srcFile, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer srcFile.Close()

	if file.Size > compressThreshold {
		var img image.Image
		if fileExt == ".png" {
			img, err = png.Decode(srcFile)
		} else {
			img, err = jpeg.Decode(srcFile)
		}
		if err != nil {
			return "", fmt.Errorf("failed to decode image: %v", err)
		}

		compressed := resize.Resize(800, 0, img, resize.Lanczos3)

		outFile, err := os.Create(fullPath)
		if err != nil {
			return "", fmt.Errorf("failed to create file: %v", err)
		}
		defer outFile.Close()

		if err := jpeg.Encode(outFile, compressed, &jpeg.Options{Quality: 80}); err != nil {
			return "", fmt.Errorf("failed to save compressed image: %v", err)
		}
	} else {
		if err := c.SaveUploadedFile(file, fullPath); err != nil {
			return "", fmt.Errorf("failed to save photo: %v", err)
		}
	}

	return filename, nil
}

// UploadBarangPhoto принимает фото товара и записывает ссылку в документ.
func (bc *BarangController) UploadBarangPhoto(c *gin.Context) {
	id := c.Param("id")
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo is required"})
		return
	}

	barang, err := store.GetByID[models.Barang](context.TODO(), bc.DB, store.CollBarang, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve barang"})
		return
	}
	if barang == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barang tidak ditemukan"})
		return
	}

	filename, err := saveBarangPhoto(c, file, barang.KodeBarang)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	barang.PhotoURL = "/uploads/barang/" + filename
	if err := bc.DB.Update(context.TODO(), store.CollBarang, id, barang); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update barang"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_url": barang.PhotoURL})
}
