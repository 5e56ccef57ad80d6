package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tweet-api/internal/domain"
	"tweet-api/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	tweets service.TweetService
	users  service.UserService
	logger *logrus.Logger
}

func NewHandler(tweets service.TweetService, users service.UserService, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		tweets: tweets,
		users:  users,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger))
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := h.authenticate()
	tweets := router.Group("/tweets")
	{
		tweets.GET("", h.listTweets)
		tweets.GET("/:id", h.getTweet)
		tweets.POST("", auth, h.createTweet)
		tweets.PATCH("/:id", auth, h.updateTweet)
		tweets.DELETE("/:id", auth, h.deleteTweet)
	}
}

const invalidPayloadMessage = "Input payload validation failed"

type tweetRequest struct {
	Text *string `json:"text" binding:"required"`
}

func (h *Handler) listTweets(c *gin.Context) {
	tweets, err := h.tweets.ListTweets(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}

	resp, err := service.NewAuthorJoin(h.users).Views(c.Request.Context(), tweets)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getTweet(c *gin.Context) {
	id, ok := h.tweetID(c)
	if !ok {
		return
	}

	tweet, err := h.tweets.GetTweet(c.Request.Context(), id)
	if err != nil {
		h.fail(c, id, err)
		return
	}
	h.respondTweet(c, http.StatusOK, *tweet)
}

func (h *Handler) createTweet(c *gin.Context) {
	caller := currentUser(c)
	if caller == nil {
		h.fail(c, 0, service.ErrUnauthorized)
		return
	}

	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidPayload(c, err)
		return
	}

	tweet, err := h.tweets.CreateTweet(c.Request.Context(), caller, *req.Text)
	if err != nil {
		h.fail(c, 0, err)
		return
	}
	h.respondTweet(c, http.StatusCreated, *tweet)
}

func (h *Handler) updateTweet(c *gin.Context) {
	caller := currentUser(c)
	if caller == nil {
		h.fail(c, 0, service.ErrUnauthorized)
		return
	}

	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidPayload(c, err)
		return
	}

	id, ok := h.tweetID(c)
	if !ok {
		return
	}

	tweet, err := h.tweets.UpdateTweet(c.Request.Context(), caller, id, *req.Text)
	if err != nil {
		h.fail(c, id, err)
		return
	}
	h.respondTweet(c, http.StatusOK, *tweet)
}

func (h *Handler) deleteTweet(c *gin.Context) {
	caller := currentUser(c)
	if caller == nil {
		h.fail(c, 0, service.ErrUnauthorized)
		return
	}

	id, ok := h.tweetID(c)
	if !ok {
		return
	}

	if err := h.tweets.DeleteTweet(c.Request.Context(), caller, id); err != nil {
		h.fail(c, id, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// tweetID parses the :id path parameter. An id that is not a positive integer
// cannot name a tweet, so it is reported as not found.
func (h *Handler) tweetID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		abort(c, http.StatusNotFound, notFoundMessage(raw))
		return 0, false
	}
	return id, true
}

func (h *Handler) respondTweet(c *gin.Context, status int, tweet domain.Tweet) {
	resp, err := service.NewAuthorJoin(h.users).View(c.Request.Context(), tweet)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(status, resp)
}

// fail maps service errors onto status codes and messages.
func (h *Handler) fail(c *gin.Context, id int64, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		abort(c, http.StatusUnauthorized, "api_key not valid")
	case errors.Is(err, service.ErrNotFound):
		abort(c, http.StatusNotFound, notFoundMessage(strconv.FormatInt(id, 10)))
	case errors.Is(err, service.ErrForbidden):
		if c.Request.Method == http.MethodDelete {
			abort(c, http.StatusForbidden, "Not allowed to remove this tweet")
		} else {
			abort(c, http.StatusForbidden, "Not allowed to update this tweet")
		}
	case errors.Is(err, service.ErrEmptyText):
		abort(c, http.StatusUnprocessableEntity, "Tweet text can't be empty")
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDContextKey),
		"path":       c.Request.URL.Path,
	}).WithError(err).Error("request failed")
	abort(c, http.StatusInternalServerError, "internal server error")
}

// invalidPayload rejects a body that failed binding. Binding details are
// logged, not returned.
func (h *Handler) invalidPayload(c *gin.Context, err error) {
	h.logger.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDContextKey),
		"path":       c.Request.URL.Path,
	}).WithError(err).Debug("invalid payload")
	abort(c, http.StatusBadRequest, invalidPayloadMessage)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("Tweet %s doesn't exist", id)
}
