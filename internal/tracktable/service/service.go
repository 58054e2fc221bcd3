// Package service exposes a small gRPC surface over the spatial index
// (rtree), clustering engine (dbscan), and simplification algorithm
// (geometry): Nearest, Cluster, and Simplify. It is modeled on
// internal/lidar/visualiser/grpc_server.go's Server type — an
// UnimplementedXServer embedding plus codes/status error mapping — but
// the request/response messages here are structpb.Struct (and, for
// Simplify, a base64-encoded codec (G) payload inside one) rather than
// a protoc-generated message set: this environment has no protoc
// available to regenerate the .proto below, so the service is built
// against google.golang.org/protobuf's well-known dynamic-value types
// instead of a hand-forged file descriptor.
//
// The accompanying tracktable.proto documents the same three RPCs in
// the shape a future protoc-gen-go pass would adopt once it can be run.
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sandialabs/tracktable-go/internal/tracktable/codec"
	"github.com/sandialabs/tracktable-go/internal/tracktable/dbscan"
	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/geometry"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
	"github.com/sandialabs/tracktable-go/internal/tracktable/rtree"
)

// Ensure Server implements the gRPC interface.
var _ TracktableServer = (*Server)(nil)

// Server implements TracktableServer. It holds no index or cluster
// state of its own — every RPC carries its own working set — so a
// single Server can be shared across all connected clients without
// locking.
type Server struct {
	UnimplementedTracktableServer
}

// NewServer creates a Server.
func NewServer() *Server {
	return &Server{}
}

func domainFromFields(fields map[string]*structpb.Value, key string) (geodomain.Domain, error) {
	v, ok := fields[key]
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "missing field %q", key)
	}
	name := v.GetStringValue()
	d, ok := codec.DomainByName(name)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown domain %q", name)
	}
	return d, nil
}

func pointsFromValue(v *structpb.Value) ([]point.Point, error) {
	lv := v.GetListValue()
	if lv == nil {
		return nil, fmt.Errorf("expected a list of points")
	}
	out := make([]point.Point, len(lv.Values))
	for i, row := range lv.Values {
		coordsList := row.GetListValue()
		if coordsList == nil {
			return nil, fmt.Errorf("point %d is not a list of coordinates", i)
		}
		coords := make([]float64, len(coordsList.Values))
		for j, c := range coordsList.Values {
			coords[j] = c.GetNumberValue()
		}
		out[i] = point.New(coords...)
	}
	return out, nil
}

func listFromPoints(pts []point.Point) *structpb.Value {
	rows := make([]*structpb.Value, len(pts))
	for i, p := range pts {
		coords := make([]*structpb.Value, p.Dim())
		for j := 0; j < p.Dim(); j++ {
			coords[j] = structpb.NewNumberValue(p.At(j))
		}
		rows[i] = structpb.NewListValue(&structpb.ListValue{Values: coords})
	}
	return structpb.NewListValue(&structpb.ListValue{Values: rows})
}

func floatsFromValue(v *structpb.Value) []float64 {
	lv := v.GetListValue()
	if lv == nil {
		return nil
	}
	out := make([]float64, len(lv.Values))
	for i, x := range lv.Values {
		out[i] = x.GetNumberValue()
	}
	return out
}

// Nearest wraps rtree's best-first kNN search (E). The request bulk-
// loads an index over "candidates" for the duration of the call, then
// returns the k closest to "query" under "domain"'s metric, ascending
// by distance.
func (s *Server) Nearest(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	domain, err := domainFromFields(fields, "domain")
	if err != nil {
		return nil, err
	}

	queryVal, ok := fields["query"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, `missing field "query"`)
	}
	query := point.New(floatsFromValue(queryVal)...)

	candVal, ok := fields["candidates"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, `missing field "candidates"`)
	}
	candidates, err := pointsFromValue(candVal)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "candidates: %v", err)
	}

	k := int(fields["k"].GetNumberValue())
	if k <= 0 {
		return nil, status.Error(codes.InvalidArgument, "k must be positive")
	}

	entries := make([]rtree.Entry[int], len(candidates))
	for i, p := range candidates {
		entries[i] = rtree.Entry[int]{Geometry: p, Payload: i}
	}
	index := rtree.BulkLoad(entries)
	found := index.FindNearestNeighbors(domain, query, k)

	pts := make([]point.Point, len(found))
	dists := make([]*structpb.Value, len(found))
	for i, e := range found {
		pts[i] = e.Geometry
		dists[i] = structpb.NewNumberValue(domain.Distance(query, e.Geometry))
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"points":    listFromPoints(pts),
		"distances": structpb.NewListValue(&structpb.ListValue{Values: dists}),
	}}, nil
}

// Cluster wraps dbscan (F). "points" is clustered fresh on every call;
// server-side index reuse is intentionally not exposed since dbscan's
// label assignment depends on the full point set, not a cached index.
func (s *Server) Cluster(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	ptsVal, ok := fields["points"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, `missing field "points"`)
	}
	pts, err := pointsFromValue(ptsVal)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "points: %v", err)
	}

	halfSpanVal, ok := fields["half_span"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, `missing field "half_span"`)
	}
	halfSpan := floatsFromValue(halfSpanVal)

	minPoints := int(fields["min_points"].GetNumberValue())
	if minPoints <= 0 {
		return nil, status.Error(codes.InvalidArgument, "min_points must be positive")
	}

	labels := dbscan.Run(pts, dbscan.Params{
		HalfSpan:        halfSpan,
		MinPoints:       minPoints,
		EuclideanRefine: fields["euclidean_refine"].GetBoolValue(),
	})

	out := make([]*structpb.Value, len(labels))
	for i, l := range labels {
		out[i] = structpb.NewNumberValue(float64(l))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"labels": structpb.NewListValue(&structpb.ListValue{Values: out}),
	}}, nil
}

// Simplify wraps geometry.Simplify (D). The request and response carry
// the trajectory as a codec (G) payload, base64-encoded into a string
// field so it fits inside a structpb.Struct.
func (s *Server) Simplify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	payloadVal, ok := fields["trajectory"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, `missing field "trajectory"`)
	}
	raw, err := base64.StdEncoding.DecodeString(payloadVal.GetStringValue())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "trajectory: %v", err)
	}

	traj, err := codec.DecodeTrajectory(bytes.NewReader(raw))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode trajectory: %v", err)
	}

	tolerance := fields["tolerance"].GetNumberValue()
	simplified, err := geometry.Simplify(traj.Domain(), traj, tolerance)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "simplify: %v", err)
	}

	var buf bytes.Buffer
	if err := codec.EncodeTrajectory(&buf, simplified); err != nil {
		return nil, status.Errorf(codes.Internal, "encode trajectory: %v", err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"trajectory": structpb.NewStringValue(base64.StdEncoding.EncodeToString(buf.Bytes())),
	}}, nil
}
