package api

import (
	"context"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/qosd/internal/qosd/entity"
	"github.com/jimyag/qosd/internal/qosd/notifier"
	"github.com/jimyag/qosd/pkg/apierror"
	"github.com/jimyag/qosd/pkg/ginx"
	"github.com/jimyag/qosd/pkg/pagination"
	"github.com/rs/zerolog"
)

// PublisherID QoS 规格通知的发布者名称
const PublisherID = "QoSSpecs"

// QoS 规格通知的事件类型
const (
	EventCreate          = "qos_specs.create"
	EventUpdate          = "qos_specs.update"
	EventDelete          = "qos_specs.delete"
	EventDeleteKeys      = "qos_specs.delete_keys"
	EventAssociate       = "qos_specs.associate"
	EventDisassociate    = "qos_specs.disassociate"
	EventDisassociateAll = "qos_specs.disassociate_all"
)

var (
	sortKeys   = []string{"id", "name", "consumer", "created_at"}
	filterKeys = []string{"id", "name", "consumer"}
)

// QoSSpecsServiceInterface 定义 QoS 规格服务的接口
type QoSSpecsServiceInterface interface {
	List(ctx context.Context, req *pagination.Request) (pagination.Page[*entity.QoSSpec], error)
	Get(ctx context.Context, id string) (*entity.QoSSpec, error)
	GetByName(ctx context.Context, name string) (*entity.QoSSpec, error)
	Create(ctx context.Context, name string, specs entity.Specs) (*entity.QoSSpec, error)
	Update(ctx context.Context, id string, specs entity.Specs) (entity.Specs, error)
	Delete(ctx context.Context, id string, force bool) error
	DeleteKeys(ctx context.Context, id string, keys []string) error
	GetAssociations(ctx context.Context, id string) ([]entity.Association, error)
	Associate(ctx context.Context, id, typeID string) error
	Disassociate(ctx context.Context, id, typeID string) error
	DisassociateAll(ctx context.Context, id string) error
}

type QoSSpecs struct {
	qosSpecsService QoSSpecsServiceInterface
	notifiers       notifier.Source
	maxLimit        int
	baseURL         string
}

func NewQoSSpecs(qosSpecsService QoSSpecsServiceInterface, notifiers notifier.Source, maxLimit int, baseURL string) *QoSSpecs {
	return &QoSSpecs{
		qosSpecsService: qosSpecsService,
		notifiers:       notifiers,
		maxLimit:        maxLimit,
		baseURL:         strings.TrimSuffix(baseURL, "/"),
	}
}

func (q *QoSSpecs) RegisterRoutes(router *gin.RouterGroup) {
	qosRouter := router.Group("/qos-specs")
	qosRouter.GET("", ginx.Adapt5(q.List))
	qosRouter.POST("", ginx.Adapt5(q.Create))
	qosRouter.GET("/:id", ginx.Adapt5(q.Show))
	qosRouter.PUT("/:id", ginx.Adapt5(q.Update))
	qosRouter.DELETE("/:id", ginx.Adapt5(q.Delete))
	qosRouter.PUT("/:id/delete_keys", ginx.Adapt5(q.DeleteKeys))
	qosRouter.GET("/:id/associations", ginx.Adapt5(q.Associations))
	qosRouter.GET("/:id/associate", ginx.Adapt5(q.Associate))
	qosRouter.GET("/:id/disassociate", ginx.Adapt5(q.Disassociate))
	qosRouter.GET("/:id/disassociate_all", ginx.Adapt5(q.DisassociateAll))
}

func (q *QoSSpecs) List(ctx *gin.Context, _ *entity.ListQoSSpecsRequest) (*entity.ListQoSSpecsResponse, error) {
	logger := zerolog.Ctx(ctx)

	query := ctx.Request.URL.Query()
	pageReq, err := pagination.Parse(query, pagination.Options{
		SortKeys:   sortKeys,
		FilterKeys: filterKeys,
		MaxLimit:   q.maxLimit,
	})
	if err != nil {
		return nil, translateError(err)
	}

	page, err := q.qosSpecsService.List(ctx, pageReq)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to list qos specs")
		return nil, translateError(err)
	}

	resp := &entity.ListQoSSpecsResponse{QoSSpecs: page.List}
	if resp.QoSSpecs == nil {
		resp.QoSSpecs = []*entity.QoSSpec{}
	}
	if page.NextMarker != "" {
		resp.Links = []entity.Link{{
			Href: pagination.NextLink(q.collectionURL(ctx), query, pageReq.Limit, page.NextMarker),
			Rel:  "next",
		}}
	}
	return resp, nil
}

func (q *QoSSpecs) Show(ctx *gin.Context, req *entity.ShowQoSSpecsRequest) (*entity.QoSSpecsResponse, error) {
	spec, err := q.qosSpecsService.Get(ctx, req.ID)
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("qosSpecsID", req.ID).
			Msg("Failed to get qos specs")
		return nil, translateError(err)
	}
	return &entity.QoSSpecsResponse{QoSSpecs: spec}, nil
}

func (q *QoSSpecs) Create(ctx *gin.Context, req *entity.CreateQoSSpecsRequest) (*entity.QoSSpecsResponse, error) {
	logger := zerolog.Ctx(ctx)
	n := q.notifiers.Notifier(PublisherID)

	var spec *entity.QoSSpec
	payload := notifier.Payload{}
	err := notifyOnce(ctx, n, EventCreate, payload, func() error {
		name, specs, err := req.Parse()
		if err != nil {
			return err
		}
		payload["name"] = name
		payload["specs"] = specs

		spec, err = q.qosSpecsService.Create(ctx, name, specs)
		return err
	})
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to create qos specs")
		return nil, translateError(err)
	}

	logger.Info().
		Str("qosSpecsID", spec.ID).
		Msg("QoS specs created successfully")
	return &entity.QoSSpecsResponse{QoSSpecs: spec}, nil
}

func (q *QoSSpecs) Update(ctx *gin.Context, req *entity.UpdateQoSSpecsRequest) (*entity.UpdateQoSSpecsResponse, error) {
	logger := zerolog.Ctx(ctx)
	n := q.notifiers.Notifier(PublisherID)

	var updated entity.Specs
	payload := notifier.Payload{"id": req.ID}
	err := notifyOnce(ctx, n, EventUpdate, payload, func() error {
		specs, err := req.Parse()
		if err != nil {
			return err
		}
		payload["specs"] = specs

		updated, err = q.qosSpecsService.Update(ctx, req.ID, specs)
		return err
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("qosSpecsID", req.ID).
			Msg("Failed to update qos specs")
		return nil, translateError(err)
	}

	return &entity.UpdateQoSSpecsResponse{QoSSpecs: updated}, nil
}

func (q *QoSSpecs) Delete(ctx *gin.Context, req *entity.DeleteQoSSpecsRequest) (*ginx.StatusResponse, error) {
	logger := zerolog.Ctx(ctx)
	n := q.notifiers.Notifier(PublisherID)

	force := req.IsForce()
	logger.Info().
		Str("qosSpecsID", req.ID).
		Bool("force", force).
		Msg("Delete qos specs called")

	err := notifyOnce(ctx, n, EventDelete, notifier.Payload{"id": req.ID}, func() error {
		return translateDeleteError(q.qosSpecsService.Delete(ctx, req.ID, force), force)
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("qosSpecsID", req.ID).
			Msg("Failed to delete qos specs")
		return nil, err
	}

	return ginx.Accepted(), nil
}

func (q *QoSSpecs) DeleteKeys(ctx *gin.Context, req *entity.DeleteKeysRequest) (*ginx.StatusResponse, error) {
	logger := zerolog.Ctx(ctx)
	n := q.notifiers.Notifier(PublisherID)

	var keys []string
	err := notifyOnce(ctx, n, EventDeleteKeys, notifier.Payload{"id": req.ID}, func() error {
		var err error
		if keys, err = requestKeys(ctx, req); err != nil {
			return err
		}
		return q.qosSpecsService.DeleteKeys(ctx, req.ID, keys)
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("qosSpecsID", req.ID).
			Strs("keys", keys).
			Msg("Failed to delete qos specs keys")
		return nil, translateError(err)
	}

	return ginx.Accepted(), nil
}

func (q *QoSSpecs) Associations(ctx *gin.Context, req *entity.AssociationsRequest) (*entity.AssociationsResponse, error) {
	associations, err := q.qosSpecsService.GetAssociations(ctx, req.ID)
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("qosSpecsID", req.ID).
			Msg("Failed to get qos specs associations")
		return nil, translateError(err)
	}
	if associations == nil {
		associations = []entity.Association{}
	}
	return &entity.AssociationsResponse{Associations: associations}, nil
}

func (q *QoSSpecs) Associate(ctx *gin.Context, req *entity.AssociateRequest) (*ginx.StatusResponse, error) {
	logger := zerolog.Ctx(ctx)
	n := q.notifiers.Notifier(PublisherID)

	payload := notifier.Payload{"id": req.ID, "type_id": req.VolTypeID}
	err := notifyOnce(ctx, n, EventAssociate, payload, func() error {
		if req.VolTypeID == "" {
			return apierror.WrapError(apierror.ErrInvalidInput, "Volume Type id must not be None.", nil)
		}
		return q.qosSpecsService.Associate(ctx, req.ID, req.VolTypeID)
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("qosSpecsID", req.ID).
			Str("volumeTypeID", req.VolTypeID).
			Msg("Failed to associate qos specs")
		return nil, translateError(err)
	}

	return ginx.Accepted(), nil
}

func (q *QoSSpecs) Disassociate(ctx *gin.Context, req *entity.AssociateRequest) (*ginx.StatusResponse, error) {
	logger := zerolog.Ctx(ctx)
	n := q.notifiers.Notifier(PublisherID)

	payload := notifier.Payload{"id": req.ID, "type_id": req.VolTypeID}
	err := notifyOnce(ctx, n, EventDisassociate, payload, func() error {
		if req.VolTypeID == "" {
			return apierror.WrapError(apierror.ErrInvalidInput, "Volume Type id must not be None.", nil)
		}
		return q.qosSpecsService.Disassociate(ctx, req.ID, req.VolTypeID)
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("qosSpecsID", req.ID).
			Str("volumeTypeID", req.VolTypeID).
			Msg("Failed to disassociate qos specs")
		return nil, translateError(err)
	}

	return ginx.Accepted(), nil
}

func (q *QoSSpecs) DisassociateAll(ctx *gin.Context, req *entity.DisassociateAllRequest) (*ginx.StatusResponse, error) {
	logger := zerolog.Ctx(ctx)
	n := q.notifiers.Notifier(PublisherID)

	err := notifyOnce(ctx, n, EventDisassociateAll, notifier.Payload{"id": req.ID}, func() error {
		return q.qosSpecsService.DisassociateAll(ctx, req.ID)
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("qosSpecsID", req.ID).
			Msg("Failed to disassociate all volume types")
		return nil, translateError(err)
	}

	return ginx.Accepted(), nil
}

// requestKeys 返回要删除的键
// XML 请求绑定失败时重新解析原始 body，根元素不是 keys 时报告格式错误
func requestKeys(ctx *gin.Context, req *entity.DeleteKeysRequest) ([]string, error) {
	if req.Keys != nil {
		return req.Keys, nil
	}

	switch ctx.ContentType() {
	case "application/xml", "text/xml":
		body, err := ginx.RawBody(ctx)
		if err != nil {
			return nil, apierror.WrapError(apierror.ErrInvalidInput, "Failed to read request body.", err)
		}
		if len(body) > 0 {
			keys, err := entity.DecodeKeysXML(body)
			if err != nil {
				return nil, apierror.WrapError(apierror.ErrInvalidInput, "Malformed request body, root element must be keys.", err)
			}
			return keys, nil
		}
	}
	return nil, apierror.WrapError(apierror.ErrInvalidInput, "Missing required element 'keys' in request body.", nil)
}

// collectionURL 返回当前集合的绝对 URL
// 配置了 base_url 时使用它，否则使用请求的 Host
func (q *QoSSpecs) collectionURL(ctx *gin.Context) *url.URL {
	if q.baseURL != "" {
		if base, err := url.Parse(q.baseURL); err == nil {
			base.Path = strings.TrimSuffix(base.Path, "/") + ctx.Request.URL.Path
			return base
		}
	}

	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	if proto := ctx.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return &url.URL{Scheme: scheme, Host: ctx.Request.Host, Path: ctx.Request.URL.Path}
}
