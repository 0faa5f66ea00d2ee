// Package qdrant provides a ports.StatIndex implementation using Qdrant.
package qdrant

import (
	"context"
	"fmt"
	"strings"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/ports"
	"github.com/ersonp/dex-core/internal/infrastructure/config"
)

const (
	payloadName  = "name"
	payloadTypes = "types"
	typeSep      = ","
)

// Repository implements ports.StatIndex using Qdrant.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

var _ ports.StatIndex = (*Repository)(nil)

// NewRepository creates a new Qdrant repository.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if cfg.APIKey != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: config.SanitizeCollectionName(cfg.Collection),
		conn:       conn,
	}, nil
}

func apiKeyInterceptor(key string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", key)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// Collection returns the collection name in use.
func (r *Repository) Collection() string {
	return r.collection
}

// EnsureIndex creates the collection if it doesn't exist.
func (r *Repository) EnsureIndex(ctx context.Context, dimensions uint64) error {
	_, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return nil
	}

	_, err = r.client.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     dimensions,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

// DeleteIndex drops the collection.
func (r *Repository) DeleteIndex(ctx context.Context) error {
	_, err := r.client.Delete(ctx, &pb.DeleteCollection{
		CollectionName: r.collection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

// Upsert stores the stat vectors of details, keyed by entity id.
func (r *Repository) Upsert(ctx context.Context, details []*entities.EntityDetail) error {
	if len(details) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, 0, len(details))
	for _, d := range details {
		points = append(points, detailToPoint(d))
	}

	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Wait:           pb.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Nearest returns up to limit entities whose stat vectors are closest to vector.
func (r *Repository) Nearest(ctx context.Context, vector []float32, limit int) ([]ports.StatMatch, error) {
	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         vector,
		Limit:          uint64(limit),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	return scoredPointsToMatches(resp.Result), nil
}

// Count returns the number of indexed entities.
func (r *Repository) Count(ctx context.Context) (uint64, error) {
	resp, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("getting collection info: %w", err)
	}

	if resp.Result.PointsCount == nil {
		return 0, nil
	}

	return *resp.Result.PointsCount, nil
}

// detailToPoint converts an entity detail to a point with its stat vector.
func detailToPoint(d *entities.EntityDetail) *pb.PointStruct {
	return &pb.PointStruct{
		Id: &pb.PointId{
			PointIdOptions: &pb.PointId_Num{Num: uint64(d.ID)},
		},
		Vectors: &pb.Vectors{
			VectorsOptions: &pb.Vectors_Vector{
				Vector: &pb.Vector{
					Data: d.StatVector(),
				},
			},
		},
		Payload: map[string]*pb.Value{
			payloadName:  {Kind: &pb.Value_StringValue{StringValue: d.Name}},
			payloadTypes: {Kind: &pb.Value_StringValue{StringValue: strings.Join(d.Types, typeSep)}},
			"total":      {Kind: &pb.Value_IntegerValue{IntegerValue: int64(d.Total())}},
		},
	}
}

// scoredPointsToMatches converts scored points to stat matches.
func scoredPointsToMatches(points []*pb.ScoredPoint) []ports.StatMatch {
	matches := make([]ports.StatMatch, 0, len(points))

	for _, point := range points {
		var types []string
		if joined := getStringValue(point.Payload, payloadTypes); joined != "" {
			types = strings.Split(joined, typeSep)
		}

		matches = append(matches, ports.StatMatch{
			Summary: entities.EntitySummary{
				ID:    int(point.Id.GetNum()),
				Name:  getStringValue(point.Payload, payloadName),
				Types: types,
			},
			Score: point.Score,
		})
	}

	return matches
}

func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
