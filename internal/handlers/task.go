package handlers

import (
	"net/http"

	"baseware/internal/dto"
	"baseware/internal/mapper"
	"baseware/internal/message"
	"baseware/internal/response"
	"baseware/internal/service"
)

type TaskHandler struct {
	text
	svc   service.TaskService
	enums service.EnumService
}

func NewTaskHandler(svc service.TaskService, enums service.EnumService, messages *message.Catalog) *TaskHandler {
	return &TaskHandler{text: text{messages}, svc: svc, enums: enums}
}

// GetTasks applies every ?filter= expression, e.g. filter=status:TODO.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	p, err := pageable(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tasks, total, err := h.svc.List(r.Context(), r.URL.Query()["filter"], p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	content := mapper.Map(tasks, mapper.ToTaskResponse)
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), response.NewPage(content, p, total))
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), mapper.ToTaskResponse(t))
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.TaskRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusCreated, h.get(r, message.Created), mapper.ToTaskResponse(t))
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.TaskRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Updated), mapper.ToTaskResponse(t))
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccessNoData(w, http.StatusOK, h.get(r, message.Deleted))
}

func (h *TaskHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.TaskActionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := h.svc.ApplyAction(r.Context(), id, req.Action)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Updated), mapper.ToTaskResponse(t))
}

// GetTaskEnums serves only the enums tasks are built from.
func (h *TaskHandler) GetTaskEnums(w http.ResponseWriter, r *http.Request) {
	entries, err := h.enums.LookupTask(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), entries)
}

func (h *TaskHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	comments, err := h.svc.ListComments(r.Context(), taskID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), mapper.Map(comments, mapper.ToCommentResponse))
}

func (h *TaskHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.CommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.svc.AddComment(r.Context(), taskID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusCreated, h.get(r, message.Created), mapper.ToCommentResponse(c))
}

func (h *TaskHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteComment(r.Context(), taskID, commentID); err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccessNoData(w, http.StatusOK, h.get(r, message.Deleted))
}

func (h *TaskHandler) GetAttachments(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	attachments, err := h.svc.ListAttachments(r.Context(), taskID, commentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), mapper.Map(attachments, mapper.ToAttachmentResponse))
}

func (h *TaskHandler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.AttachmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.svc.AddAttachment(r.Context(), taskID, commentID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusCreated, h.get(r, message.Created), mapper.ToAttachmentResponse(a))
}
