package mapper

import (
	"notetaking-be/internal/dto"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	return &entity.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Type:      entity.NoteType(n.Type),
		FilePath:  n.FilePath,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	return &model.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Type:      n.Type.String(),
		FilePath:  n.FilePath,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) ToResponse(n *entity.Note) *dto.NoteResponse {
	if n == nil {
		return nil
	}

	return &dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Type:      n.Type.String(),
		FilePath:  n.FilePath,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// ToResponses never returns nil so an empty list encodes as [] rather than null.
func (m *NoteMapper) ToResponses(notes []*entity.Note) []*dto.NoteResponse {
	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, m.ToResponse(n))
	}
	return res
}
