// Package docs registers the OpenAPI description served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/main.go -o docs` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Получить токен администратора",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Неверный пароль"}}
            }
        },
        "/rules": {
            "get": {"tags": ["rules"], "summary": "Текущие правила турнира", "responses": {"200": {"description": "OK"}}},
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["rules"],
                "summary": "Изменить правила турнира",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Группы уже разыграны"}, "422": {"description": "Некорректные правила"}}
            }
        },
        "/teams": {
            "get": {"tags": ["teams"], "summary": "Список команд", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["teams"], "summary": "Создать команду", "responses": {"201": {"description": "Created"}}}
        },
        "/teams/{teamID}": {
            "get": {
                "tags": ["teams"],
                "summary": "Команда по ID",
                "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/teams/{teamID}/logo": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["teams"],
                "summary": "Загрузить логотип команды",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "string", "name": "teamID", "in": "path", "required": true},
                    {"type": "file", "name": "logo", "in": "formData", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Хранилище логотипов не настроено"}}
            }
        },
        "/zones": {
            "get": {"tags": ["zones"], "summary": "Зоны с составами", "responses": {"200": {"description": "OK"}}}
        },
        "/zones/auto-assign": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["zones"], "summary": "Случайно распределить все команды по зонам", "responses": {"200": {"description": "OK"}, "409": {"description": "Группы уже разыграны"}}}
        },
        "/zones/move": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["zones"], "summary": "Перенести команду в другую зону", "responses": {"200": {"description": "OK"}, "400": {"description": "Некорректный перенос"}, "409": {"description": "Группы уже разыграны"}}}
        },
        "/zones/reset": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["zones"], "summary": "Сбросить зоны и групповые матчи", "responses": {"204": {"description": "No Content"}}}
        },
        "/zones/seed": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["zones"], "summary": "Жеребьевка: сгенерировать матчи групп", "responses": {"201": {"description": "Created"}, "409": {"description": "Группы уже разыграны"}, "422": {"description": "Недостаточно полных зон"}}}
        },
        "/zones/{zoneID}/standings": {
            "get": {
                "tags": ["standings"],
                "summary": "Таблица зоны",
                "parameters": [{"type": "string", "name": "zoneID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/standings": {
            "get": {"tags": ["standings"], "summary": "Таблицы всех зон", "responses": {"200": {"description": "OK"}}}
        },
        "/fixtures": {
            "get": {
                "tags": ["fixtures"],
                "summary": "Матчи группового этапа",
                "parameters": [{"type": "string", "name": "zone_id", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/fixtures/{fixtureID}/result": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["fixtures"],
                "summary": "Записать результат матча",
                "parameters": [{"type": "string", "name": "fixtureID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Некорректный счет"}, "404": {"description": "Not Found"}, "409": {"description": "Команды матча еще не определены"}}
            }
        },
        "/fixtures/{fixtureID}/status": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["fixtures"],
                "summary": "Изменить статус матча",
                "parameters": [{"type": "string", "name": "fixtureID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Некорректный статус"}}
            }
        },
        "/playoffs": {
            "get": {
                "tags": ["playoffs"],
                "summary": "Сетка плей-офф",
                "parameters": [{"type": "string", "name": "zone_id", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/playoffs/generate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["playoffs"], "summary": "Сгенерировать сетку плей-офф", "responses": {"201": {"description": "Created"}, "422": {"description": "Нет зон с четырьмя командами"}}}
        },
        "/overview": {
            "get": {"tags": ["tournament"], "summary": "Полное состояние турнира", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Zone Cup API",
	Description:      "Жеребьевка групп, таблицы и плей-офф турнира по зонам.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
