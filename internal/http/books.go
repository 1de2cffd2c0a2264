package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/librarium/bibliotheque/internal/audit"
	"github.com/librarium/bibliotheque/internal/database/books"
	"github.com/librarium/bibliotheque/internal/entities"
)

// BookRequest is the payload for creating or updating a book.
type BookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	CopyCount int    `json:"copy_count"`
}

type BooksController struct {
	repo    *books.Repository
	auditor *audit.Service
}

func NewBooksController(repo *books.Repository, auditor *audit.Service) *BooksController {
	return &BooksController{
		repo:    repo,
		auditor: auditor,
	}
}

// ListBooks returns the whole catalog, or a filtered subset when the
// title or author query parameter is present. Filters are substring
// matches and case-sensitive.
func (controller *BooksController) ListBooks(c *gin.Context) {
	var (
		result []entities.Book
		err    error
	)
	switch {
	case c.Request.URL.Query().Has("title"):
		result, err = controller.repo.FindByTitle(c.Query("title"))
	case c.Request.URL.Query().Has("author"):
		result, err = controller.repo.FindByAuthor(c.Query("author"))
	default:
		result, err = controller.repo.ListAll()
	}
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": result, "count": len(result)})
}

// GetBook returns one book by id.
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.repo.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

// CreateBook adds a book to the catalog.
func (controller *BooksController) CreateBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book := &entities.Book{
		Title:     req.Title,
		Author:    req.Author,
		CopyCount: req.CopyCount,
	}
	err := controller.repo.Add(book)
	controller.auditor.LogCatalog("create", "book", book.ID, book.Title, err)
	if err != nil {
		respondStoreError(c, err, "book")
		return
	}
	respondCreated(c, book)
}

// UpdateBook rewrites every field of one book.
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book := &entities.Book{
		ID:        id,
		Title:     req.Title,
		Author:    req.Author,
		CopyCount: req.CopyCount,
	}
	err := controller.repo.Update(book)
	controller.auditor.LogCatalog("update", "book", id, book.Title, err)
	if err != nil {
		respondStoreError(c, err, "book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

// DeleteBook removes a book. Loans referencing it are left in place.
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := controller.repo.Delete(id)
	controller.auditor.LogCatalog("delete", "book", id, "", err)
	if err != nil {
		respondStoreError(c, err, "book")
		return
	}
	respondSuccess(c, "book deleted")
}
