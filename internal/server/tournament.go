package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListGroups(c *gin.Context) {
	groups, err := s.tournamentSvc.Groups(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (s *Server) GetGroupByName(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		AbortWithError(c, newValidationError("name", "invalid_name", "group name is required"))
		return
	}

	detail, err := s.tournamentSvc.GroupByName(c.Request.Context(), name)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": detail.Group, "teams": detail.Teams})
}

func (s *Server) ListTeams(c *gin.Context) {
	teams, err := s.tournamentSvc.Teams(c.Request.Context(), c.Query("group"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func (s *Server) GetTeamByName(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		AbortWithError(c, newValidationError("name", "invalid_name", "team name is required"))
		return
	}

	team, err := s.tournamentSvc.TeamByName(c.Request.Context(), name)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

func (s *Server) GetTeamByID(c *gin.Context) {
	team, err := s.tournamentSvc.TeamByID(c.Request.Context(), c.Param("idTeam"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

func (s *Server) ListGames(c *gin.Context) {
	games, err := s.tournamentSvc.Games(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (s *Server) GetGameByID(c *gin.Context) {
	game, err := s.tournamentSvc.GameByID(c.Request.Context(), c.Param("idGame"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game})
}

func (s *Server) ListStadiums(c *gin.Context) {
	stadiums, err := s.tournamentSvc.Stadiums(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stadiums": stadiums})
}

func (s *Server) GetStadiumByID(c *gin.Context) {
	stadium, err := s.tournamentSvc.StadiumByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stadium": stadium})
}
