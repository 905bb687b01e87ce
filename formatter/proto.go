package formatter

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/theoremus-urban-solutions/transit-directions/scene"
)

// BuildProto encodes the GeoJSON document as a binary google.protobuf.Struct.
func (sb *sceneBuilder) BuildProto(snap scene.Snapshot) ([]byte, error) {
	st, err := sb.Struct(snap)
	if err != nil {
		return nil, err
	}
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal scene struct: %w", err)
	}
	return b, nil
}

// Struct returns the GeoJSON document as a structpb.Struct.
func (sb *sceneBuilder) Struct(snap scene.Snapshot) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(sb.document(snap))
	if err != nil {
		return nil, fmt.Errorf("convert scene to struct: %w", err)
	}
	return st, nil
}
